package services

import (
	"errors"
	"fmt"
	"math"

	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
)

var (
	// ErrProductUnavailable is returned when the customized product is no
	// longer sold at checkout time.
	ErrProductUnavailable = errors.New("product is unavailable")

	// ErrInvalidSize is returned when the chosen size is no longer offered by
	// the product at checkout time.
	ErrInvalidSize = errors.New("size is not offered")

	// ErrInvalidAddOn is returned when a chosen add-on is no longer offered by
	// the product at checkout time.
	ErrInvalidAddOn = errors.New("add-on is not offered")
)

// OrderAssembler is a domain service that prices a finalized customization
// against the live catalog.
//
// The catalog may have changed between selection and checkout, so every
// choice is re-validated here: the product must still be available and the
// chosen size and add-ons must still be offered. On any mismatch the
// customization is rejected and no order is built.
//
// Pricing rules:
//   - unit price = base price + size modifier + sum of add-on prices
//   - line subtotal = unit price * quantity, unrounded
//   - order total = sum of subtotals, rounded to cents once
type OrderAssembler struct{}

// NewOrderAssembler creates a new OrderAssembler instance.
func NewOrderAssembler() OrderAssembler {
	return OrderAssembler{}
}

// AssembleItem re-validates a complete customization against the product and
// turns it into a priced line item.
func (OrderAssembler) AssembleItem(c *session.Customization, p *product.Product) (order.Item, error) {
	if p == nil || !p.Available {
		return order.Item{}, ErrProductUnavailable
	}
	if !p.ID.IsEqual(c.ProductID()) {
		return order.Item{}, ErrProductUnavailable
	}

	size, ok := p.SizeByName(c.Size())
	if !ok {
		return order.Item{}, fmt.Errorf("%w: %q", ErrInvalidSize, c.Size())
	}

	unitPrice := p.BasePrice + size.PriceModifier

	names := c.AddOns()
	addOns := make([]order.ItemAddOn, 0, len(names))
	for _, name := range names {
		addOn, ok := p.AddOnByName(name)
		if !ok {
			return order.Item{}, fmt.Errorf("%w: %q", ErrInvalidAddOn, name)
		}
		addOns = append(addOns, order.ItemAddOn{Name: addOn.Name, Price: addOn.Price})
		unitPrice += addOn.Price
	}

	item := order.Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Size:        size.Name,
		SugarLevel:  c.Sugar().String(),
		AddOns:      addOns,
		UnitPrice:   unitPrice,
		Quantity:    c.Quantity(),
		Subtotal:    unitPrice * float64(c.Quantity()),
		Preparation: p.Preparation(),
	}
	if c.Ice().IsSet() {
		item.IceLevel = c.Ice().String()
	}

	return item, nil
}

// Total sums line subtotals and rounds the result to cents.
func (OrderAssembler) Total(items []order.Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return math.Round(total*100) / 100
}
