// Package productrepo persists the drink catalog.
package productrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/product"
)

// ProductDTO represents the database structure for catalog products. Sizes
// and add-ons are small catalog-ordered lists, stored as JSON documents.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Category    string
	BasePrice   float64
	Sizes       string `gorm:"type:jsonb"`
	AddOns      string `gorm:"type:jsonb"`
	Preparation int64
	Available   bool `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

type sizeDTO struct {
	Name          string  `json:"name"`
	PriceModifier float64 `json:"priceModifier"`
}

type addOnDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func fromDomain(p *product.Product) (ProductDTO, error) {
	sizes := make([]sizeDTO, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, sizeDTO{Name: s.Name, PriceModifier: s.PriceModifier})
	}
	addOns := make([]addOnDTO, 0, len(p.AddOns))
	for _, a := range p.AddOns {
		addOns = append(addOns, addOnDTO{Name: a.Name, Price: a.Price})
	}

	rawSizes, err := json.Marshal(sizes)
	if err != nil {
		return ProductDTO{}, err
	}
	rawAddOns, err := json.Marshal(addOns)
	if err != nil {
		return ProductDTO{}, err
	}

	return ProductDTO{
		ID:          p.ID.Bytes(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category.String(),
		BasePrice:   p.BasePrice,
		Sizes:       string(rawSizes),
		AddOns:      string(rawAddOns),
		Preparation: int64(p.PreparationTime),
		Available:   p.Available,
	}, nil
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	category, err := product.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	var sizes []sizeDTO
	if dto.Sizes != "" {
		if err = json.Unmarshal([]byte(dto.Sizes), &sizes); err != nil {
			return nil, err
		}
	}
	var addOns []addOnDTO
	if dto.AddOns != "" {
		if err = json.Unmarshal([]byte(dto.AddOns), &addOns); err != nil {
			return nil, err
		}
	}

	p := &product.Product{
		ID:              id,
		Name:            dto.Name,
		Description:     dto.Description,
		Category:        category,
		BasePrice:       dto.BasePrice,
		PreparationTime: time.Duration(dto.Preparation),
		Available:       dto.Available,
	}
	for _, s := range sizes {
		p.Sizes = append(p.Sizes, product.Size{Name: s.Name, PriceModifier: s.PriceModifier})
	}
	for _, a := range addOns {
		p.AddOns = append(p.AddOns, product.AddOn{Name: a.Name, Price: a.Price})
	}

	return p, nil
}
