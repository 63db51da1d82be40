// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are a snapshot taken at checkout, so they are stored as a JSON
// document rather than normalized rows. The token column is unique: it is the
// lookup key for redemption.
type OrderDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Customer string    `gorm:"index"`
	Items    string    `gorm:"type:jsonb"`
	Total    float64
	Status   int    `gorm:"index"`
	Token    string `gorm:"uniqueIndex"`
	Redeemed bool

	CreatedAt time.Time
	PickupAt  time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items, err := json.Marshal(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Customer:  aggregate.Customer(),
		Items:     string(items),
		Total:     aggregate.Total(),
		Status:    int(aggregate.Status()),
		Token:     aggregate.Token(),
		Redeemed:  aggregate.IsRedeemed(),
		CreatedAt: aggregate.CreatedAt(),
		PickupAt:  aggregate.PickupAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var items []order.Item
	if dto.Items != "" {
		if err = json.Unmarshal([]byte(dto.Items), &items); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		dto.Customer,
		items,
		dto.Total,
		order.Status(dto.Status),
		dto.Token,
		dto.Redeemed,
		dto.CreatedAt,
		dto.PickupAt,
	)
}
