package session

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// State is the position of a conversation in the customization flow.
//
// Flow:
//
//	Browsing ──> ProductSelected ──> SelectingSize ──> Customizing
//	                                                       │
//	         ┌──────────────┬──────────────┬───────────────┼───────────────┐
//	         ▼              ▼              ▼               ▼               ▼
//	  SelectingSugar  SelectingIce  SelectingAddOns  SelectingQuantity  Reviewing
//	         │              │              │(loops)        │               │
//	         └──────────────┴──────┬───────┴───────────────┘               │
//	                               ▼                                       ▼
//	                          Customizing                    Finalized / Cancelled
//
// Finalized and Cancelled are terminal. Every leaf selection state returns to
// Customizing on success or on an explicit "back"; SelectingAddOns re-enters
// itself after each toggle until the customer navigates back.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	StateUnknown State = iota

	// StateBrowsing is the initial state; the customer is picking a product.
	StateBrowsing

	// StateProductSelected means a product was chosen and a size is awaited.
	StateProductSelected

	// StateSelectingSize means the size menu is open.
	StateSelectingSize

	// StateCustomizing is the hub from which leaf selections are reached.
	StateCustomizing

	// StateSelectingSugar means the sugar level menu is open.
	StateSelectingSugar

	// StateSelectingIce means the ice level menu is open (iced/frappe only).
	StateSelectingIce

	// StateSelectingAddOns means the add-on toggle menu is open.
	StateSelectingAddOns

	// StateSelectingQuantity means the quantity menu is open.
	StateSelectingQuantity

	// StateReviewing means the summary is shown and confirmation is awaited.
	StateReviewing

	// StateFinalized is terminal; the customization was handed to checkout.
	StateFinalized

	// StateCancelled is terminal; the customer abandoned the order.
	StateCancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:           "unknown",
		StateBrowsing:          "browsing",
		StateProductSelected:   "product_selected",
		StateSelectingSize:     "selecting_size",
		StateCustomizing:       "customizing",
		StateSelectingSugar:    "selecting_sugar",
		StateSelectingIce:      "selecting_ice",
		StateSelectingAddOns:   "selecting_addons",
		StateSelectingQuantity: "selecting_quantity",
		StateReviewing:         "reviewing",
		StateFinalized:         "finalized",
		StateCancelled:         "cancelled",
	}
}

// Validate checks that the state is one of the declared flow states.
func (s State) Validate() error {
	if s == StateUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"state", fmt.Errorf("%d is not a valid state", s))
	}
	if _, ok := getStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the wire name of the state, or "unknown".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the conversation can accept further inputs.
func (s State) IsTerminal() bool {
	return s == StateFinalized || s == StateCancelled
}

// IsLeafSelection reports whether the state is one of the single-field
// selection menus reached from the customizing hub.
func (s State) IsLeafSelection() bool {
	switch s {
	case StateSelectingSugar, StateSelectingIce, StateSelectingAddOns, StateSelectingQuantity, StateSelectingSize:
		return true
	default:
		return false
	}
}
