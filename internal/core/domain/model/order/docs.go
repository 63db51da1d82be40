// Package order contains the Order aggregate and its lifecycle rules.
//
// An order is created from a finalized conversation, priced once at creation,
// and carries a single-use pickup token. The token is the only way to complete
// the order; completion marks the token redeemed so a second presentation of
// the same token is rejected. Cancellation invalidates the token.
package order
