// Package queries contains read operations over the order store.
// Query handlers bypass the domain model and read database rows directly,
// forming the read side of the CQRS split.
package queries

import (
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var ErrGetAwaitingPickupOrdersQueryIsNotConstructed = errors.New(
	"GetAwaitingPickupOrdersQuery must be created via NewGetAwaitingPickupOrdersQuery constructor",
)

// GetAwaitingPickupOrdersQuery retrieves all orders waiting at the counter.
// This is the barista's work queue: placed orders whose tokens have not been
// redeemed yet.
type GetAwaitingPickupOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAwaitingPickupOrdersQuery creates a query for the counter work queue.
// This is a parameterless query.
func NewGetAwaitingPickupOrdersQuery() GetAwaitingPickupOrdersQuery {
	return GetAwaitingPickupOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAwaitingPickupOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAwaitingPickupOrdersQueryIsNotConstructed)
}

// GetAwaitingPickupOrdersQueryResponse is one row of the counter work queue.
type GetAwaitingPickupOrdersQueryResponse struct {
	ID        kernel.UUID
	Customer  string
	Total     float64
	CreatedAt time.Time
	PickupAt  time.Time
}
