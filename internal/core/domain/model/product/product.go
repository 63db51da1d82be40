package product

import (
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
)

// DefaultPreparationTime is assumed when the catalog does not declare one.
const DefaultPreparationTime = 5 * time.Minute

// Size is one of a product's declared serving sizes. PriceModifier is added to
// the base price and may be negative.
type Size struct {
	Name          string
	PriceModifier float64
}

// AddOn is an optional extra declared by the catalog, priced per unit.
type AddOn struct {
	Name  string
	Price float64
}

// Product is the catalog read model consumed at selection and checkout time.
// Prices are in the catalog's currency unit. The ordering core never mutates a
// product; it captures the prices it needs into order line items at finalize.
type Product struct {
	ID              kernel.UUID
	Name            string
	Description     string
	Category        Category
	BasePrice       float64
	Sizes           []Size
	AddOns          []AddOn
	PreparationTime time.Duration
	Available       bool
}

// SizeByName returns the declared size with the given name.
func (p *Product) SizeByName(name string) (Size, bool) {
	for _, s := range p.Sizes {
		if s.Name == name {
			return s, true
		}
	}
	return Size{}, false
}

// AddOnByName returns the declared add-on with the given name.
func (p *Product) AddOnByName(name string) (AddOn, bool) {
	for _, a := range p.AddOns {
		if a.Name == name {
			return a, true
		}
	}
	return AddOn{}, false
}

// SizeNames lists the declared size names in catalog order.
func (p *Product) SizeNames() []string {
	names := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		names = append(names, s.Name)
	}
	return names
}

// Preparation returns the declared preparation time, falling back to
// DefaultPreparationTime when the catalog left it unset.
func (p *Product) Preparation() time.Duration {
	if p.PreparationTime <= 0 {
		return DefaultPreparationTime
	}
	return p.PreparationTime
}
