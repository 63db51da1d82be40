package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
)

func latte() *product.Product {
	return &product.Product{
		ID:        kernel.NewUUID(),
		Name:      "Latte",
		Category:  product.CategoryHot,
		BasePrice: 4.75,
		Sizes: []product.Size{
			{Name: "small", PriceModifier: -0.50},
			{Name: "medium", PriceModifier: 0},
			{Name: "large", PriceModifier: 0.50},
		},
		AddOns: []product.AddOn{
			{Name: "extra shot", Price: 0.75},
			{Name: "whipped cream", Price: 0.50},
		},
		Available: true,
	}
}

func TestOrderAssemblerAssembleItem(t *testing.T) {
	assembler := NewOrderAssembler()

	t.Run("should price a large latte with an extra shot", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(p.ID, "large", session.LevelLow, session.LevelUnset,
			[]string{"extra shot"}, 2)

		item, err := assembler.AssembleItem(c, p)

		require.NoError(t, err)
		assert.Equal(t, "Latte", item.ProductName)
		assert.Equal(t, "large", item.Size)
		assert.Equal(t, "low", item.SugarLevel)
		assert.Empty(t, item.IceLevel)
		assert.InDelta(t, 6.00, item.UnitPrice, 0.001)
		assert.Equal(t, 2, item.Quantity)
		assert.InDelta(t, 12.00, item.Subtotal, 0.001)
	})

	t.Run("should carry the ice level for iced drinks", func(t *testing.T) {
		p := latte()
		p.Category = product.CategoryIced
		c := session.RestoreCustomization(p.ID, "medium", session.LevelNone, session.LevelHigh, nil, 1)

		item, err := assembler.AssembleItem(c, p)

		require.NoError(t, err)
		assert.Equal(t, "high", item.IceLevel)
	})

	t.Run("negative size modifier should lower the price", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(p.ID, "small", session.LevelMedium, session.LevelUnset, nil, 1)

		item, err := assembler.AssembleItem(c, p)

		require.NoError(t, err)
		assert.InDelta(t, 4.25, item.UnitPrice, 0.001)
	})

	t.Run("should reject product withdrawn after selection", func(t *testing.T) {
		p := latte()
		p.Available = false
		c := session.RestoreCustomization(p.ID, "medium", session.LevelMedium, session.LevelUnset, nil, 1)

		_, err := assembler.AssembleItem(c, p)

		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("should reject size removed after selection", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(p.ID, "venti", session.LevelMedium, session.LevelUnset, nil, 1)

		_, err := assembler.AssembleItem(c, p)

		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("should reject add-on removed after selection", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(p.ID, "medium", session.LevelMedium, session.LevelUnset,
			[]string{"caramel drizzle"}, 1)

		_, err := assembler.AssembleItem(c, p)

		assert.ErrorIs(t, err, ErrInvalidAddOn)
	})

	t.Run("should reject product mismatch", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(kernel.NewUUID(), "medium", session.LevelMedium,
			session.LevelUnset, nil, 1)

		_, err := assembler.AssembleItem(c, p)

		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("should default preparation time when catalog leaves it unset", func(t *testing.T) {
		p := latte()
		c := session.RestoreCustomization(p.ID, "medium", session.LevelMedium, session.LevelUnset, nil, 1)

		item, err := assembler.AssembleItem(c, p)

		require.NoError(t, err)
		assert.Equal(t, product.DefaultPreparationTime, item.Preparation)
	})
}

func TestOrderAssemblerTotal(t *testing.T) {
	assembler := NewOrderAssembler()

	t.Run("should round to cents once", func(t *testing.T) {
		items := []order.Item{
			{Subtotal: 3.333},
			{Subtotal: 3.333},
			{Subtotal: 3.333},
		}

		assert.InDelta(t, 10.00, assembler.Total(items), 0.0001)
	})

	t.Run("empty items total zero", func(t *testing.T) {
		assert.Zero(t, assembler.Total(nil))
	})
}
