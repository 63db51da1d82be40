package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// StartSessionCommandHandler opens a conversation for a customer identity.
//
// One identity owns at most one live session. A live non-terminal session is
// resumed with its current prompt; an absent, expired, or finished one is
// replaced with a fresh browsing session.
type StartSessionCommandHandler struct {
	store       ports.SessionStore
	catalog     ports.ProductCatalog
	locks       *SessionLocks
	idleTimeout time.Duration
	clock       func() time.Time
}

// NewStartSessionCommandHandler creates a handler for starting conversations.
func NewStartSessionCommandHandler(
	store ports.SessionStore,
	catalog ports.ProductCatalog,
	locks *SessionLocks,
	idleTimeout time.Duration,
) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		store:       store,
		catalog:     catalog,
		locks:       locks,
		idleTimeout: idleTimeout,
		clock:       time.Now,
	}
}

// Handle resumes or creates the identity's session and returns the prompt to
// show the customer.
func (h *StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) (SessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return SessionResult{}, err
	}

	release := h.locks.Acquire(cmd.Identity())
	defer release()

	now := h.clock()

	s, err := loadLiveSession(ctx, h.store, cmd.Identity(), now, h.idleTimeout)
	switch {
	case err == nil && !s.State().IsTerminal():
		s.Touch(now)
	case err == nil || errs.IsNotFound(err):
		// Finished or absent conversations start over.
		s, err = session.NewSession(cmd.Identity(), now)
		if err != nil {
			return SessionResult{}, err
		}
	default:
		return SessionResult{}, err
	}

	if err = h.store.Save(ctx, s); err != nil {
		return SessionResult{}, err
	}

	p, err := currentProduct(ctx, h.catalog, s)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		Identity: s.Identity(),
		State:    s.State(),
		Prompt:   s.PromptFor(p),
	}, nil
}
