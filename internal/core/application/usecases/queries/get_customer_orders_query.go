package queries

import (
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
)

// GetCustomerOrdersQuery retrieves one customer's order history,
// newest first.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customer string

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates an order history query.
// Validates that the customer identity is not empty.
func NewGetCustomerOrdersQuery(customer string) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomer(customer); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// Customer returns the identity whose history is requested.
func (q GetCustomerOrdersQuery) Customer() string {
	return q.customer
}

func (q *GetCustomerOrdersQuery) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	q.customer = customer
	return nil
}

// GetCustomerOrdersQueryResponse is one row of a customer's order history.
// The pickup token is deliberately absent: history listings are not a way to
// recover a redeemable token.
type GetCustomerOrdersQueryResponse struct {
	ID        kernel.UUID
	Status    string
	Total     float64
	CreatedAt time.Time
	PickupAt  time.Time
}
