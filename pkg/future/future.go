package future

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vessel-io/agent/pkg/loop"
	"github.com/vessel-io/agent/pkg/prom"
)

// ErrResolveTimeout is returned by ResolveWithin when the deadline passes
// before the future is decided. The body is not cancelled, it keeps running.
var ErrResolveTimeout = errors.New("future resolve timeout")

// Body is the unit of work a Future wraps.
// A body decides its future through Deliver or Fail, or returns without
// deciding and leaves that to an asynchronous callback it armed.
type Body func(f *Future)

// Future is a single-assignment asynchronous result.
// The body starts lazily on the first Resolve call, exactly once, on a fresh
// execution unit scheduled through the Loop. The result is written once,
// later Deliver/Fail calls are no-ops. All parked waiters resume together
// through the Loop's deferred-task queue in the tick after the decision,
// never inline within the call that decided it.
type Future struct {
	lp      *loop.Loop
	body    Body
	start   sync.Once
	lock    sync.Locker
	decided bool
	value   interface{}
	err     error
	done    chan struct{}
}

// New initializes an undecided Future bound to the given Loop.
// A nil body is allowed for futures decided purely from the outside.
func New(lp *loop.Loop, body Body) *Future {
	return &Future{
		lp:   lp,
		body: body,
		lock: &sync.Mutex{},
		done: make(chan struct{}),
	}
}

// Deliver sets the result to a success value, first decision wins
func (f *Future) Deliver(value interface{}) {
	f.decide(value, nil)
}

// Fail sets the result to an error, first decision wins
func (f *Future) Fail(err error) {
	f.decide(nil, err)
}

func (f *Future) decide(value interface{}, err error) {
	f.lock.Lock()
	if f.decided {
		f.lock.Unlock()
		return
	}
	f.decided = true
	f.value = value
	f.err = err
	f.lock.Unlock()
	// waiters resume on a later tick, decide always returns first
	f.lp.Submit(func() {
		close(f.done)
	})
}

// Resolve lazily starts the body on the first call from any waiter,
// parks until the future is decided, then returns the success value or
// the stored error. On an already decided future it returns immediately.
func (f *Future) Resolve() (interface{}, error) {
	f.startBody()
	<-f.done
	return f.value, f.err
}

// ResolveWithin is Resolve with a caller-supplied deadline.
// There is no cancellation, a body that outlives the deadline runs on and
// may still decide the future for other waiters.
func (f *Future) ResolveWithin(d time.Duration) (interface{}, error) {
	f.startBody()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		return nil, ErrResolveTimeout
	}
}

func (f *Future) startBody() {
	f.start.Do(func() {
		if f.body == nil {
			return
		}
		f.lp.Submit(f.run)
	})
}

// run executes the body once, capturing a panic as a plain failure
func (f *Future) run() {
	begin := time.Now()
	defer func() {
		if r := recover(); r != nil {
			f.Fail(fmt.Errorf("future body error: %v", r))
		}
		prom.FutureBodySeconds.Observe(time.Since(begin).Seconds())
	}()
	f.body(f)
}
