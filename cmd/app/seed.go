package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/ports"
)

// seedCatalog loads the starter menu on first boot. An already populated
// catalog is left untouched so operators can curate it.
func seedCatalog(ctx context.Context, catalog ports.ProductCatalog, logger *zap.Logger) error {
	existing, err := catalog.ListAvailable(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range starterMenu() {
		if err = catalog.Add(ctx, p); err != nil {
			return err
		}
	}

	logger.Info("catalog seeded", zap.Int("products", len(starterMenu())))
	return nil
}

func starterMenu() []*product.Product {
	regularSizes := []product.Size{
		{Name: "small", PriceModifier: -0.50},
		{Name: "medium", PriceModifier: 0},
		{Name: "large", PriceModifier: 0.50},
	}
	coffeeAddOns := []product.AddOn{
		{Name: "extra shot", Price: 0.75},
		{Name: "whipped cream", Price: 0.50},
		{Name: "oat milk", Price: 0.60},
	}

	return []*product.Product{
		{
			ID:              kernel.NewUUID(),
			Name:            "Latte",
			Description:     "Espresso with steamed milk",
			Category:        product.CategoryHot,
			BasePrice:       4.75,
			Sizes:           regularSizes,
			AddOns:          coffeeAddOns,
			PreparationTime: 5 * time.Minute,
			Available:       true,
		},
		{
			ID:              kernel.NewUUID(),
			Name:            "Americano",
			Description:     "Espresso with hot water",
			Category:        product.CategoryHot,
			BasePrice:       3.50,
			Sizes:           regularSizes,
			AddOns:          coffeeAddOns[:1],
			PreparationTime: 3 * time.Minute,
			Available:       true,
		},
		{
			ID:              kernel.NewUUID(),
			Name:            "Iced Mocha",
			Description:     "Chocolate espresso over ice",
			Category:        product.CategoryIced,
			BasePrice:       5.25,
			Sizes:           regularSizes,
			AddOns:          coffeeAddOns,
			PreparationTime: 6 * time.Minute,
			Available:       true,
		},
		{
			ID:              kernel.NewUUID(),
			Name:            "Caramel Frappe",
			Description:     "Blended ice coffee with caramel",
			Category:        product.CategoryFrappe,
			BasePrice:       5.75,
			Sizes:           regularSizes,
			AddOns:          coffeeAddOns[1:],
			PreparationTime: 8 * time.Minute,
			Available:       true,
		},
	}
}
