package agent

import (
	cmap "github.com/orcaman/concurrent-map"
	"github.com/vessel-io/agent/pkg/instance"
	"github.com/vessel-io/agent/pkg/loop"
	"go.uber.org/zap"
)

var ag *Agent

// Agent owns every instance this node runs.
// It translates raw job specifications into instances, keeps the live
// table and hands startup work to each instance's own sequencer.
type Agent struct {
	lp        *loop.Loop
	instances cmap.ConcurrentMap
}

// Initial creates the process-wide Agent on the process-wide Loop
func Initial() {
	ag = New(loop.GetLoop())
}

// GetAgent returns the process-wide Agent
func GetAgent() *Agent {
	return ag
}

// New initializes an Agent bound to the given Loop
func New(lp *loop.Loop) *Agent {
	return &Agent{
		lp:        lp,
		instances: cmap.New(),
	}
}

// Submit translates and validates a raw job specification and registers
// the born instance in the table. Validation errors surface synchronously,
// nothing is registered on failure.
func (a *Agent) Submit(raw map[string]interface{}) (*instance.Instance, error) {
	attributes := instance.Translate(raw)
	ins := instance.NewInstance(a.lp, attributes)
	if err := ins.Validate(); err != nil {
		zap.S().Warnw("job specification rejected", "err", err)
		return nil, err
	}
	a.instances.Set(ins.InstanceID(), ins)
	zap.S().Infow("instance registered",
		"instance_id", ins.InstanceID(),
		"application_name", ins.ApplicationName(),
		"runtime_name", ins.RuntimeName())
	return ins, nil
}

// Get returns a registered instance by id
func (a *Agent) Get(id string) (*instance.Instance, bool) {
	v, ok := a.instances.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*instance.Instance), true
}

// Count returns the number of registered instances
func (a *Agent) Count() int {
	return a.instances.Count()
}

// List returns every registered instance
func (a *Agent) List() []*instance.Instance {
	out := make([]*instance.Instance, 0, a.instances.Count())
	for item := range a.instances.IterBuffered() {
		out = append(out, item.Val.(*instance.Instance))
	}
	return out
}

// Snapshot counts registered instances per lifecycle state
func (a *Agent) Snapshot() map[string]int {
	snapshot := make(map[string]int, 8)
	for item := range a.instances.IterBuffered() {
		ins := item.Val.(*instance.Instance)
		snapshot[string(ins.State())]++
	}
	return snapshot
}
