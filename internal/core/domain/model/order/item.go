package order

import (
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
)

// ItemAddOn is an extra captured on a line item with the price it was
// charged at.
type ItemAddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Item is one priced line of an order. It is a snapshot: product name,
// prices, and preparation time are captured at finalize so later catalog
// edits cannot change what the customer pays or waits for.
//
// UnitPrice is the base price plus the size modifier plus all add-on prices.
// Subtotal is UnitPrice multiplied by Quantity, kept unrounded; the order
// total is rounded once.
type Item struct {
	ProductID   kernel.UUID   `json:"productId"`
	ProductName string        `json:"productName"`
	Size        string        `json:"size"`
	SugarLevel  string        `json:"sugarLevel"`
	IceLevel    string        `json:"iceLevel,omitempty"`
	AddOns      []ItemAddOn   `json:"addOns,omitempty"`
	UnitPrice   float64       `json:"unitPrice"`
	Quantity    int           `json:"quantity"`
	Subtotal    float64       `json:"subtotal"`
	Preparation time.Duration `json:"preparation"`
}
