package service

import "sync"

// eventLocks hands out one mutex per event id. Entries are reference counted and
// dropped once no caller holds or waits on them.
type eventLocks struct {
	mu    sync.Mutex
	locks map[uint]*eventLock
}

type eventLock struct {
	mu   sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[uint]*eventLock)}
}

// Lock blocks until the event's mutex is held and returns its release func.
func (l *eventLocks) Lock(eventID uint) func() {
	l.mu.Lock()
	el, ok := l.locks[eventID]
	if !ok {
		el = &eventLock{}
		l.locks[eventID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()
	return func() {
		el.mu.Unlock()
		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}

func (l *eventLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
