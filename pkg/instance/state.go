package instance

// State is the lifecycle state of an instance.
// Only the born to starting transition is driven from this package,
// the runtime integration above moves instances through the rest.
type State string

const (
	StateBorn     State = "born"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateCrashed  State = "crashed"
	StateStopped  State = "stopped"
	StateDeleted  State = "deleted"
)

// State returns the current lifecycle state
func (i *Instance) State() State {
	i.lock.Lock()
	defer i.lock.Unlock()
	return i.state
}

// advance moves the instance out of born, re-checking the state under
// the lock because asynchronous time may have passed since the last look.
// op names the attempted operation in the TransitionError.
func (i *Instance) advance(to State, op string) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	if i.state != StateBorn {
		return &TransitionError{From: i.state, To: op}
	}
	i.state = to
	return nil
}
