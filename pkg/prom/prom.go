package prom

import "github.com/prometheus/client_golang/prometheus"

var (
	FutureBodySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agent_future_body_seconds",
		Help:    "execution time of future bodies",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
	})
	InstanceStarts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_instance_starts_total",
		Help: "instance start attempts by result",
	}, []string{"result"})
	DropletDownloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_droplet_downloads_total",
		Help: "droplet downloads by result",
	}, []string{"result"})
)

// run before route define, now at root.go
func init() {
	_ = prometheus.Register(FutureBodySeconds)
	_ = prometheus.Register(InstanceStarts)
	_ = prometheus.Register(DropletDownloads)
}
