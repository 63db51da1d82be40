// Package product provides the catalog read model consumed by the ordering core.
//
// The catalog itself (its storage and CRUD surface) is an external collaborator;
// this package only describes what a product looks like when it crosses the
// catalog lookup port: category, base price, declared sizes with price
// modifiers, declared add-ons with prices, availability, and the preparation
// time used for pickup estimates.
//
// Category is a value object restricting products to the hot/iced/frappe
// domains; ice level customization is only meaningful for iced and frappe
// drinks.
package product
