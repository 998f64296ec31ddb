package sequencer

import (
	"sync"

	"github.com/vessel-io/agent/pkg/future"
	"github.com/vessel-io/agent/pkg/loop"
)

// Continuation receives the outcome of a drained entry,
// the captured resolve error or nil on success
type Continuation func(err error)

type entry struct {
	f    *future.Future
	cont Continuation
}

// Sequencer is a per-instance FIFO of (future, continuation) pairs.
// At most one entry is resolving at any time, entries never overlap,
// so two startup workflows against the same instance cannot interleave
// their side effects. Entries are removed only after their continuation
// has returned, and the next entry begins immediately after.
type Sequencer struct {
	lock    sync.Locker
	lp      *loop.Loop
	entries []*entry
}

// New initializes an empty Sequencer bound to the given Loop
func New(lp *loop.Loop) *Sequencer {
	return &Sequencer{
		lock: &sync.Mutex{},
		lp:   lp,
	}
}

// Enqueue appends an entry. When the queue was empty the entry is
// dispatched at once, otherwise it waits for the entries before it.
func (s *Sequencer) Enqueue(f *future.Future, cont Continuation) {
	s.lock.Lock()
	s.entries = append(s.entries, &entry{f: f, cont: cont})
	first := len(s.entries) == 1
	s.lock.Unlock()
	if first {
		s.dispatch()
	}
}

// dispatch drains the head entry on a fresh execution unit.
// Only one dispatch chain is alive at a time: it is started by the
// Enqueue that made the queue non-empty and re-armed after each pop,
// so continuation plus pop-and-advance is atomic relative to the
// other entries.
func (s *Sequencer) dispatch() {
	s.lp.Submit(func() {
		s.lock.Lock()
		head := s.entries[0]
		s.lock.Unlock()
		_, err := head.f.Resolve()
		head.cont(err)
		s.lock.Lock()
		s.entries = s.entries[1:]
		more := len(s.entries) > 0
		s.lock.Unlock()
		if more {
			s.dispatch()
		}
	})
}

// Pending returns the number of entries not yet drained
func (s *Sequencer) Pending() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.entries)
}
