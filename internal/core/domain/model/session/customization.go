package session

import (
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
)

// Quantity bounds for one customization.
const (
	MinQuantity = 1
	MaxQuantity = 6
)

// Customization is the in-progress record of one drink's choices. Fields are
// overwritten idempotently as the customer re-selects, except add-ons, which
// form a toggle set unique by name. A customization becomes immutable once it
// is embedded into an order at finalize.
type Customization struct {
	productID kernel.UUID
	size      string
	sugar     Level
	ice       Level
	addOns    []string
	quantity  int
}

// NewCustomization starts an empty customization for the given product.
func NewCustomization(productID kernel.UUID) *Customization {
	return &Customization{productID: productID}
}

// RestoreCustomization reconstructs a customization from persistence.
func RestoreCustomization(
	productID kernel.UUID,
	size string,
	sugar, ice Level,
	addOns []string,
	quantity int,
) *Customization {
	c := &Customization{
		productID: productID,
		size:      size,
		sugar:     sugar,
		ice:       ice,
		quantity:  quantity,
	}
	for _, name := range addOns {
		if !c.HasAddOn(name) {
			c.addOns = append(c.addOns, name)
		}
	}
	return c
}

// ProductID returns the customized product's identifier.
func (c *Customization) ProductID() kernel.UUID {
	return c.productID
}

// Size returns the selected size name, or "" if unset.
func (c *Customization) Size() string {
	return c.size
}

// Sugar returns the selected sugar level.
func (c *Customization) Sugar() Level {
	return c.sugar
}

// Ice returns the selected ice level. LevelUnset is valid for hot drinks,
// where ice does not apply.
func (c *Customization) Ice() Level {
	return c.ice
}

// Quantity returns the selected quantity, or 0 if unset.
func (c *Customization) Quantity() int {
	return c.quantity
}

// AddOns returns the selected add-on names in selection order.
func (c *Customization) AddOns() []string {
	out := make([]string, len(c.addOns))
	copy(out, c.addOns)
	return out
}

// HasAddOn reports whether the named add-on is currently selected.
func (c *Customization) HasAddOn(name string) bool {
	for _, n := range c.addOns {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Customization) setSize(name string) {
	c.size = name
}

func (c *Customization) setSugar(level Level) {
	c.sugar = level
}

func (c *Customization) setIce(level Level) {
	c.ice = level
}

// toggleAddOn flips membership of the named add-on and reports whether it is
// selected afterwards. Toggling twice restores the prior set.
func (c *Customization) toggleAddOn(name string) bool {
	for i, n := range c.addOns {
		if n == name {
			c.addOns = append(c.addOns[:i], c.addOns[i+1:]...)
			return false
		}
	}
	c.addOns = append(c.addOns, name)
	return true
}

func (c *Customization) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	c.quantity = quantity
	return nil
}

// MissingFields lists the required fields that are still unset. requiresIce
// should be true for iced/frappe drinks; hot drinks never require an ice level.
func (c *Customization) MissingFields(requiresIce bool) []string {
	var missing []string
	if c.size == "" {
		missing = append(missing, "size")
	}
	if !c.sugar.IsSet() {
		missing = append(missing, "sugar level")
	}
	if requiresIce && !c.ice.IsSet() {
		missing = append(missing, "ice level")
	}
	if c.quantity < MinQuantity {
		missing = append(missing, "quantity")
	}
	return missing
}
