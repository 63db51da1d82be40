package ports

import (
	"context"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/product"
)

// ProductCatalog defines the read contract for the drink menu. The ordering
// core treats the catalog as external data: products are looked up at
// selection and re-validated at checkout, never mutated.
type ProductCatalog interface {
	// GetProduct retrieves a product by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such product exists.
	GetProduct(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// ListAvailable retrieves the products currently offered for ordering,
	// in catalog order.
	ListAvailable(ctx context.Context) ([]*product.Product, error)

	// Add persists a product. Used by catalog seeding.
	Add(ctx context.Context, p *product.Product) error
}
