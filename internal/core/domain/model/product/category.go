package product

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// Category classifies a drink and decides which customizations apply.
// Ice level selection is only allowed for Iced and Frappe drinks.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	// CategoryHot covers hot drinks. Ice level does not apply.
	CategoryHot

	// CategoryIced covers drinks served over ice.
	CategoryIced

	// CategoryFrappe covers blended ice drinks.
	CategoryFrappe
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown: "unknown",
		CategoryHot:     "hot",
		CategoryIced:    "iced",
		CategoryFrappe:  "frappe",
	}
}

func getValidCategoryStrings() map[Category]string {
	//nolint:exhaustive // CategoryUnknown is intentionally excluded as it's invalid
	return map[Category]string{
		CategoryHot:    "hot",
		CategoryIced:   "iced",
		CategoryFrappe: "frappe",
	}
}

// CategoryFromString parses a catalog category name ("hot", "iced", "frappe").
func CategoryFromString(s string) (Category, error) {
	for category, str := range getValidCategoryStrings() {
		if str == s {
			return category, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"category", fmt.Errorf("%q is not a valid category", s))
}

// Validate checks that the category is one of the declared catalog categories.
func (c Category) Validate() error {
	if _, ok := getValidCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// String returns the catalog name of the category, or "unknown".
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// AllowsIce reports whether drinks in this category accept an ice level.
func (c Category) AllowsIce() bool {
	return c == CategoryIced || c == CategoryFrappe
}
