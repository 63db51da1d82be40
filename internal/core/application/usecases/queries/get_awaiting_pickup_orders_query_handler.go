package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
)

// GetAwaitingPickupOrdersQueryHandler reads the counter work queue from the
// database, oldest order first.
type GetAwaitingPickupOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAwaitingPickupOrdersQueryHandler creates a handler for counter queue queries.
// Requires a GORM database connection for query execution.
func NewGetAwaitingPickupOrdersQueryHandler(db *gorm.DB) GetAwaitingPickupOrdersQueryHandler {
	return GetAwaitingPickupOrdersQueryHandler{db: db}
}

// Handle returns all orders in awaiting_pickup status, oldest first.
func (h GetAwaitingPickupOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAwaitingPickupOrdersQuery,
) ([]GetAwaitingPickupOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAwaitingPickupOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer,
			total,
			created_at,
			pickup_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, int(order.AwaitingPickup)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAwaitingPickupOrdersQueryResponse
		var id uuid.UUID
		var createdAt, pickupAt time.Time

		err = rows.Scan(
			&id,
			&resp.Customer,
			&resp.Total,
			&createdAt,
			&pickupAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt
		resp.PickupAt = pickupAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
