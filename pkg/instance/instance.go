package instance

import (
	"sync"

	"github.com/rs/xid"
	"github.com/vessel-io/agent/pkg/droplet"
	"github.com/vessel-io/agent/pkg/loop"
	"github.com/vessel-io/agent/pkg/runtimes"
	"github.com/vessel-io/agent/pkg/sequencer"
	"go.uber.org/zap"
)

// Attributes is the typed record behind the instance accessors,
// its fields are exactly the keys the schema declares
type Attributes struct {
	InstanceID         string
	InstanceIndex      int
	ApplicationID      int
	ApplicationVersion string
	ApplicationName    string
	ApplicationURIs    []string
	ApplicationUsers   []string
	DropletSHA1        string
	DropletFile        string
	DropletURI         string
	RuntimeName        string
	FrameworkName      string
	Limits             interface{}
	Environment        interface{}
	Services           interface{}
	Flapping           interface{}
	Debug              interface{}
	Console            interface{}
}

// bindAttributes populates the typed record from the canonical map.
// Binding is best effort, mistyped values stay at their zero value and
// are reported by Validate, never here.
func bindAttributes(attributes map[string]interface{}) Attributes {
	a := Attributes{}
	if v, ok := attributes["instance_id"].(string); ok {
		a.InstanceID = v
	}
	if v, ok := toInt(attributes["instance_index"]); ok {
		a.InstanceIndex = v
	}
	if v, ok := toInt(attributes["application_id"]); ok {
		a.ApplicationID = v
	}
	if v, ok := attributes["application_version"].(string); ok {
		a.ApplicationVersion = v
	}
	if v, ok := attributes["application_name"].(string); ok {
		a.ApplicationName = v
	}
	if v, ok := toStringSlice(attributes["application_uris"]); ok {
		a.ApplicationURIs = v
	}
	if v, ok := toStringSlice(attributes["application_users"]); ok {
		a.ApplicationUsers = v
	}
	if v, ok := attributes["droplet_sha1"].(string); ok {
		a.DropletSHA1 = v
	}
	if v, ok := attributes["droplet_file"].(string); ok {
		a.DropletFile = v
	}
	if v, ok := attributes["droplet_uri"].(string); ok {
		a.DropletURI = v
	}
	if v, ok := attributes["runtime_name"].(string); ok {
		a.RuntimeName = v
	}
	if v, ok := attributes["framework_name"].(string); ok {
		a.FrameworkName = v
	}
	a.Limits = attributes["limits"]
	a.Environment = attributes["environment"]
	a.Services = attributes["services"]
	a.Flapping = attributes["flapping"]
	a.Debug = attributes["debug"]
	a.Console = attributes["console"]
	return a
}

// Instance is one application instance this node runs on behalf of the
// cluster scheduler. The identity is assigned at creation and never
// changes, state only advances through legal transitions, and all
// startup workflows against one instance drain through its sequencer
// one at a time.
type Instance struct {
	lock       sync.Locker
	attributes map[string]interface{}
	attrs      Attributes
	state      State
	lp         *loop.Loop
	serial     *sequencer.Sequencer
	log        *zap.SugaredLogger
}

// add test inject points here
var (
	NewID = func() string {
		return xid.New().String()
	}
	RuntimeLookup = func(name string) (*runtimes.Runtime, bool) {
		return runtimes.GetRegistry().Lookup(name)
	}
	ResolveDroplet = func(sha1 string) droplet.Handle {
		return droplet.GetRegistry().Resolve(sha1)
	}
)

// NewInstance initializes an instance from canonical attributes,
// assigning a fresh opaque id and the born state. The tagged logger is
// fixed here and carries the same fields for the instance's whole life.
func NewInstance(lp *loop.Loop, attributes map[string]interface{}) *Instance {
	attrs := make(map[string]interface{}, len(attributes)+1)
	for k, v := range attributes {
		attrs[k] = v
	}
	attrs["instance_id"] = NewID()
	bound := bindAttributes(attrs)
	return &Instance{
		lock:       &sync.Mutex{},
		attributes: attrs,
		attrs:      bound,
		state:      StateBorn,
		lp:         lp,
		serial:     sequencer.New(lp),
		log: zap.S().With(
			"instance_id", bound.InstanceID,
			"instance_index", bound.InstanceIndex,
			"application_id", bound.ApplicationID,
			"application_version", bound.ApplicationVersion,
			"application_name", bound.ApplicationName,
		),
	}
}

// Validate runs schema validation and checks that the declared runtime
// exists on this node. A missing runtime is logged and returned, the
// scheduler wants the log line and the caller wants the error.
func (i *Instance) Validate() error {
	if err := Validate(i.attributes); err != nil {
		return err
	}
	if _, ok := RuntimeLookup(i.attrs.RuntimeName); !ok {
		i.log.Warnw("runtime not found", "runtime_name", i.attrs.RuntimeName)
		return &RuntimeNotFoundError{RuntimeName: i.attrs.RuntimeName}
	}
	return nil
}

// Droplet resolves the package handle for this instance's droplet,
// it has no side effects and never fails
func (i *Instance) Droplet() droplet.Handle {
	return ResolveDroplet(i.attrs.DropletSHA1)
}

func (i *Instance) InstanceID() string         { return i.attrs.InstanceID }
func (i *Instance) InstanceIndex() int         { return i.attrs.InstanceIndex }
func (i *Instance) ApplicationID() int         { return i.attrs.ApplicationID }
func (i *Instance) ApplicationVersion() string { return i.attrs.ApplicationVersion }
func (i *Instance) ApplicationName() string    { return i.attrs.ApplicationName }
func (i *Instance) ApplicationURIs() []string  { return i.attrs.ApplicationURIs }
func (i *Instance) ApplicationUsers() []string { return i.attrs.ApplicationUsers }
func (i *Instance) DropletSHA1() string        { return i.attrs.DropletSHA1 }
func (i *Instance) DropletFile() string        { return i.attrs.DropletFile }
func (i *Instance) DropletURI() string         { return i.attrs.DropletURI }
func (i *Instance) RuntimeName() string        { return i.attrs.RuntimeName }
func (i *Instance) FrameworkName() string      { return i.attrs.FrameworkName }
func (i *Instance) Limits() interface{}        { return i.attrs.Limits }
func (i *Instance) Environment() interface{}   { return i.attrs.Environment }
func (i *Instance) Services() interface{}      { return i.attrs.Services }
func (i *Instance) Flapping() interface{}      { return i.attrs.Flapping }
func (i *Instance) Debug() interface{}         { return i.attrs.Debug }
func (i *Instance) Console() interface{}       { return i.attrs.Console }
