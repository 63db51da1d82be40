package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// SubmitInputCommandHandler applies one customer input to the identity's
// session. Access is serialized per identity, so rapid successive inputs are
// applied in order against consistent state.
//
// A rejected input leaves the session untouched; the returned SessionResult
// still carries the prompt for the current state so the transport layer can
// re-prompt alongside the error.
type SubmitInputCommandHandler struct {
	store       ports.SessionStore
	catalog     ports.ProductCatalog
	locks       *SessionLocks
	idleTimeout time.Duration
	clock       func() time.Time
}

// NewSubmitInputCommandHandler creates a handler for conversation inputs.
func NewSubmitInputCommandHandler(
	store ports.SessionStore,
	catalog ports.ProductCatalog,
	locks *SessionLocks,
	idleTimeout time.Duration,
) SubmitInputCommandHandler {
	return SubmitInputCommandHandler{
		store:       store,
		catalog:     catalog,
		locks:       locks,
		idleTimeout: idleTimeout,
		clock:       time.Now,
	}
}

// Handle advances the identity's session with the command's input.
func (h *SubmitInputCommandHandler) Handle(ctx context.Context, cmd SubmitInputCommand) (SessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return SessionResult{}, err
	}

	release := h.locks.Acquire(cmd.Identity())
	defer release()

	now := h.clock()

	s, err := loadLiveSession(ctx, h.store, cmd.Identity(), now, h.idleTimeout)
	if err != nil {
		return SessionResult{}, err
	}

	p, err := h.resolveProduct(ctx, s, cmd.Input())
	if err != nil {
		return SessionResult{}, err
	}

	prompt, applyErr := s.Apply(cmd.Input(), p)
	if applyErr != nil {
		return SessionResult{
			Identity: s.Identity(),
			State:    s.State(),
			Prompt:   s.PromptFor(p),
		}, applyErr
	}

	s.Touch(now)
	if err = h.store.Save(ctx, s); err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		Identity: s.Identity(),
		State:    s.State(),
		Prompt:   prompt,
	}, nil
}

// resolveProduct fetches the product the input concerns: the picked one while
// browsing, otherwise the one already under customization.
func (h *SubmitInputCommandHandler) resolveProduct(
	ctx context.Context,
	s *session.Session,
	in session.Input,
) (*product.Product, error) {
	if sel, ok := in.(session.SelectProduct); ok && s.State() == session.StateBrowsing {
		p, err := h.catalog.GetProduct(ctx, sel.ProductID)
		if err != nil {
			if errs.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return p, nil
	}

	return currentProduct(ctx, h.catalog, s)
}
