package instance

import "fmt"

// TransitionError reports an illegal lifecycle transition attempt,
// the instance state is left untouched when it is returned
type TransitionError struct {
	From State
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// RuntimeNotFoundError means the declared runtime is absent from the
// node's runtime registry
type RuntimeNotFoundError struct {
	RuntimeName string
}

func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("runtime %s not found", e.RuntimeName)
}
