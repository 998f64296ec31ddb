package runtimes

import (
	"io/ioutil"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/spf13/viper"
	"github.com/vessel-io/agent/pkg/env"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var reg *Registry

// Runtime is a named execution environment an instance can declare,
// e.g. ruby19 or node, described by the node's runtimes file
type Runtime struct {
	Name        string            `yaml:"name"`
	Executable  string            `yaml:"executable"`
	Version     string            `yaml:"version"`
	VersionFlag string            `yaml:"version_flag"`
	Environment map[string]string `yaml:"environment"`
}

// Registry holds the runtimes this node offers, keyed by name
type Registry struct {
	runtimes cmap.ConcurrentMap
}

// Initial loads the process-wide Registry from the configured runtimes file.
// A missing file leaves the registry empty, every instance validation will
// then fail with a runtime not found error, which is the wanted behavior
// for a node that offers nothing.
func Initial() {
	reg = NewRegistry()
	path := viper.GetString(env.RuntimesPath)
	if path == "" {
		return
	}
	if err := reg.Load(path); err != nil {
		zap.S().Warnw("runtimes file load error", "path", path, "err", err)
	}
}

// GetRegistry returns the process-wide Registry
func GetRegistry() *Registry {
	return reg
}

// NewRegistry initializes an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		runtimes: cmap.New(),
	}
}

// Load reads a yaml list of runtimes and registers each of them
func (r *Registry) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	var list []*Runtime
	if err := yaml.Unmarshal(data, &list); err != nil {
		return err
	}
	for _, rt := range list {
		r.Register(rt)
	}
	zap.S().Infow("runtimes registered", "count", len(list), "path", path)
	return nil
}

// Register adds or replaces a runtime
func (r *Registry) Register(rt *Runtime) {
	r.runtimes.Set(rt.Name, rt)
}

// Lookup returns the runtime for a name, or false when the node lacks it
func (r *Registry) Lookup(name string) (*Runtime, bool) {
	v, ok := r.runtimes.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Runtime), true
}
