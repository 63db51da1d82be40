// Package kernel provides core domain primitives shared by all aggregates of the
// coffee shop ordering system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//
// These primitives enforce domain invariants, are immutable, and are safe for
// concurrent use.
package kernel
