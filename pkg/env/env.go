package env

const (
	Local              = "local"
	Port               = "port"
	Mock               = "mock"
	Environment        = "Environment"
	DropletDirectory   = "dropletDirectory"
	DownloadAttempts   = "downloadAttempts"
	RuntimesPath       = "runtimesPath"
	SelfName           = "selfName"
	TraceAgentHostPort = "TraceAgentHostPort"
)
