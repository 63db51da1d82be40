package ports

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/session"
)

// SessionStore defines the persistence contract for conversation sessions,
// keyed by customer identity. One identity owns at most one session.
//
// Stores do not interpret session state; idle expiry is enforced by the
// application layer at access time. PruneExpired exists so stores without
// native TTL support can reclaim abandoned sessions.
type SessionStore interface {
	// Get retrieves the session for the given identity.
	// Returns errs.ErrObjectNotFound when the identity has no session.
	Get(ctx context.Context, identity string) (*session.Session, error)

	// Save persists the session under its identity, replacing any previous
	// one and resetting the store's idle clock.
	Save(ctx context.Context, s *session.Session) error

	// Delete removes the session for the given identity. Deleting an absent
	// session is not an error.
	Delete(ctx context.Context, identity string) error

	// PruneExpired removes sessions idle longer than the given timeout and
	// returns how many were removed. Stores with native TTL expiry may
	// implement this as a no-op.
	PruneExpired(ctx context.Context, now time.Time, idleTimeout time.Duration) (int, error)
}
