package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// SessionResult is what session-touching handlers hand back to the transport
// layer: the state after the operation and the prompt to show next.
type SessionResult struct {
	Identity string
	State    session.State
	Prompt   session.Prompt
}

// loadLiveSession retrieves the identity's session, enforcing idle expiry at
// access time. An expired session is deleted and reported as absent.
func loadLiveSession(
	ctx context.Context,
	store ports.SessionStore,
	identity string,
	now time.Time,
	idleTimeout time.Duration,
) (*session.Session, error) {
	s, err := store.Get(ctx, identity)
	if err != nil {
		return nil, err
	}

	if s.IsExpired(now, idleTimeout) {
		_ = store.Delete(ctx, identity)
		return nil, errs.NewObjectNotFoundError("session", identity)
	}

	return s, nil
}

// currentProduct resolves the product the session is customizing. Returns nil
// while browsing or when the catalog no longer has the product; the state
// machine treats nil as unavailable.
func currentProduct(
	ctx context.Context,
	catalog ports.ProductCatalog,
	s *session.Session,
) (*product.Product, error) {
	id, ok := s.CurrentProductID()
	if !ok {
		return nil, nil
	}

	p, err := catalog.GetProduct(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}
