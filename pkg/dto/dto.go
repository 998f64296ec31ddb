package dto

// StartResponse is the outcome of submitting and starting one instance
type StartResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	InstanceID string `json:"instanceId"`
	State      string `json:"state"`
}

// InstanceInfo is one row of the instance listing
type InstanceInfo struct {
	InstanceID      string `json:"instanceId"`
	InstanceIndex   int    `json:"instanceIndex"`
	ApplicationID   int    `json:"applicationId"`
	ApplicationName string `json:"applicationName"`
	RuntimeName     string `json:"runtimeName"`
	State           string `json:"state"`
}

// ListResponse reports the live instance table and per-state counts
type ListResponse struct {
	Success   bool           `json:"success"`
	Instances []InstanceInfo `json:"instances"`
	States    map[string]int `json:"states"`
}
