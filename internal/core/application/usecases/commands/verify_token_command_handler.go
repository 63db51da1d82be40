package commands

import (
	"context"

	"coffeeshop/internal/core/domain/model/order"
)

// VerifyTokenCommandHandler redeems a pickup token and completes its order.
//
// Redemption is delegated to the repository's atomic RedeemByToken, so when
// the same token is presented concurrently exactly one presentation succeeds
// and the rest are rejected with order.ErrAlreadyRedeemed. Tokens of
// cancelled orders are rejected with order.ErrOrderCancelled regardless of
// the redeemed flag.
type VerifyTokenCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewVerifyTokenCommandHandler creates a handler for token redemption.
func NewVerifyTokenCommandHandler(uowFactory OrderUoWFactory) VerifyTokenCommandHandler {
	return VerifyTokenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle redeems the presented token and returns the completed order for the
// counter to read the drinks from.
func (h *VerifyTokenCommandHandler) Handle(ctx context.Context, cmd VerifyTokenCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	completed, err := uow.OrderRepository().RedeemByToken(ctx, cmd.Token())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return completed, nil
}
