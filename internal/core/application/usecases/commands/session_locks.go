package commands

import (
	"sync"
)

// SessionLocks serializes session access per customer identity. Handlers that
// read-modify-write a session take the identity's lock for the whole
// operation, so two rapid inputs from the same customer are applied one after
// the other and finalize cannot race a concurrent input.
//
// Locks are created on demand and removed once no one holds or waits for
// them, so the map does not grow with the customer population.
type SessionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewSessionLocks creates an empty lock registry. One instance is shared by
// all session-touching handlers.
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{
		entries: make(map[string]*lockEntry),
	}
}

// Acquire blocks until the identity's lock is held and returns the release
// function. Callers must release exactly once, typically via defer.
func (l *SessionLocks) Acquire(identity string) func() {
	l.mu.Lock()
	entry, ok := l.entries[identity]
	if !ok {
		entry = &lockEntry{}
		l.entries[identity] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, identity)
		}
		l.mu.Unlock()
	}
}
