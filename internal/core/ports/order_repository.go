// Package ports defines the persistence contracts between the ordering core
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByToken retrieves the order carrying the given pickup token.
	// Returns order.ErrTokenNotFound when no order carries it.
	GetByToken(ctx context.Context, token string) (*order.Order, error)

	// RedeemByToken atomically completes the order carrying the given pickup
	// token and marks the token redeemed. At most one concurrent call for the
	// same token succeeds; the implementation must make the status check and
	// the flag flip a single atomic step.
	//
	// Failures are classified against the order's current state:
	//   - order.ErrTokenNotFound   no order carries the token
	//   - order.ErrOrderCancelled  the order was cancelled
	//   - order.ErrAlreadyRedeemed the token was already used
	//   - order.ErrInvalidTransition the order is not redeemable yet
	//
	// Returns the completed order on success.
	RedeemByToken(ctx context.Context, token string) (*order.Order, error)
}
