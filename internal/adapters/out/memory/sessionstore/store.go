// Package sessionstore keeps conversation sessions in process memory.
// It backs deployments without Redis and is the default store in tests.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/pkg/errs"
)

// InMemorySessionStore implements ports.SessionStore with a mutex-guarded map.
// Sessions have no TTL here; a periodic PruneExpired sweep reclaims idle ones.
//
// Save and Get exchange snapshots, never the caller's pointer. A handler that
// mutates its session after an errored operation leaves the stored state
// untouched, matching the round-trip behavior of the Redis store.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*session.Session)}
}

func (s *InMemorySessionStore) Get(_ context.Context, identity string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[identity]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", identity)
	}
	return snapshot(sess)
}

func (s *InMemorySessionStore) Save(_ context.Context, sess *session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	stored, err := snapshot(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Identity()] = stored
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, identity)
	return nil
}

func (s *InMemorySessionStore) PruneExpired(
	_ context.Context,
	now time.Time,
	idleTimeout time.Duration,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for identity, sess := range s.sessions {
		if sess.IsExpired(now, idleTimeout) {
			delete(s.sessions, identity)
			pruned++
		}
	}
	return pruned, nil
}

// snapshot deep-copies a session through its restore constructors.
func snapshot(sess *session.Session) (*session.Session, error) {
	var c *session.Customization
	if orig := sess.Customization(); orig != nil {
		c = session.RestoreCustomization(
			orig.ProductID(),
			orig.Size(),
			orig.Sugar(),
			orig.Ice(),
			orig.AddOns(),
			orig.Quantity(),
		)
	}
	return session.RestoreSession(sess.Identity(), sess.State(), c, sess.LastActivity())
}
