package loop

import (
	"sync"

	"go.uber.org/zap"
)

var lp *Loop

// Loop is the agent's cooperative executor.
// Every deferred task goes through one FIFO queue and a single dispatcher,
// the dispatcher launches each task on a fresh execution unit.
// Nothing submitted to the Loop ever runs inline within Submit,
// which is what lets a decided future return before any of its waiters resume.
type Loop struct {
	lock    sync.Locker
	tasks   chan func()
	stopped bool
	wg      sync.WaitGroup
}

// Initial creates the process-wide Loop, called once at agent start
func Initial() {
	lp = New()
}

// GetLoop returns the process-wide Loop
// tests create their own Loop with New instead
func GetLoop() *Loop {
	return lp
}

// New initializes a Loop and starts its dispatcher
func New() *Loop {
	l := &Loop{
		lock:  &sync.Mutex{},
		tasks: make(chan func(), 1000),
	}
	go l.dispatch()
	return l
}

// Submit appends a task to the deferred-task queue.
// Submit on a stopped Loop drops the task with a warning.
func (l *Loop) Submit(task func()) {
	l.lock.Lock()
	if l.stopped {
		l.lock.Unlock()
		zap.S().Warnw("loop submit after stop, task dropped")
		return
	}
	l.wg.Add(1)
	l.tasks <- task
	l.lock.Unlock()
}

// dispatch pops tasks strictly FIFO and gives each one a fresh goroutine
func (l *Loop) dispatch() {
	for task := range l.tasks {
		t := task
		go func() {
			defer l.wg.Done()
			t()
		}()
	}
}

// Stop refuses new tasks and shuts the dispatcher down after the queue drains.
// Tasks already launched keep running, Drain waits for them.
func (l *Loop) Stop() {
	l.lock.Lock()
	if l.stopped {
		l.lock.Unlock()
		return
	}
	l.stopped = true
	close(l.tasks)
	l.lock.Unlock()
}

// Drain blocks until every submitted task has returned
func (l *Loop) Drain() {
	l.wg.Wait()
}
