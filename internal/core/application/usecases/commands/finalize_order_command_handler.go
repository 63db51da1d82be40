package commands

import (
	"context"
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
)

// FinalizeOrderCommandHandler turns a finished conversation into a placed
// order.
//
// The customization is re-validated against the live catalog before pricing.
// If the catalog drifted since selection (product withdrawn, size or add-on
// removed) the checkout is rejected and the conversation returns to browsing
// so the customer can pick again. On success the order is persisted in
// AwaitingPickup status with a freshly minted token and the session is
// discarded.
type FinalizeOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	store       ports.SessionStore
	catalog     ports.ProductCatalog
	locks       *SessionLocks
	assembler   services.OrderAssembler
	idleTimeout time.Duration
	clock       func() time.Time
}

// NewFinalizeOrderCommandHandler creates a handler for checkout operations.
func NewFinalizeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	store ports.SessionStore,
	catalog ports.ProductCatalog,
	locks *SessionLocks,
	assembler services.OrderAssembler,
	idleTimeout time.Duration,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory:  uowFactory,
		store:       store,
		catalog:     catalog,
		locks:       locks,
		assembler:   assembler,
		idleTimeout: idleTimeout,
		clock:       time.Now,
	}
}

// Handle checks out the identity's session and returns the placed order.
func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	release := h.locks.Acquire(cmd.Identity())
	defer release()

	now := h.clock()

	s, err := loadLiveSession(ctx, h.store, cmd.Identity(), now, h.idleTimeout)
	if err != nil {
		return nil, err
	}

	p, err := currentProduct(ctx, h.catalog, s)
	if err != nil {
		return nil, err
	}
	if _, selected := s.CurrentProductID(); selected && p == nil {
		return nil, h.restartAfterDrift(ctx, s, services.ErrProductUnavailable)
	}

	requiresIce := p != nil && p.Category.AllowsIce()
	if err = s.Finalize(requiresIce); err != nil {
		return nil, err
	}

	item, err := h.assembler.AssembleItem(s.Customization(), p)
	if err != nil {
		if isCatalogDrift(err) {
			return nil, h.restartAfterDrift(ctx, s, err)
		}
		return nil, err
	}

	items := []order.Item{item}
	total := h.assembler.Total(items)

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Identity(), items, total, now)
	if err != nil {
		return nil, err
	}
	if err = newOrder.AwaitPickup(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The conversation is over; the next interaction starts a fresh one.
	_ = h.store.Delete(ctx, cmd.Identity())

	return newOrder, nil
}

// restartAfterDrift discards the stale customization so the customer can
// select again, then reports the original drift error.
func (h *FinalizeOrderCommandHandler) restartAfterDrift(ctx context.Context, s *session.Session, cause error) error {
	s.RestartBrowsing()
	if err := h.store.Save(ctx, s); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func isCatalogDrift(err error) bool {
	return errors.Is(err, services.ErrProductUnavailable) ||
		errors.Is(err, services.ErrInvalidSize) ||
		errors.Is(err, services.ErrInvalidAddOn)
}
