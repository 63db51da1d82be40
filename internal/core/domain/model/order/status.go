package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an order lifecycle action is not
// allowed from the order's current status.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports the status that rejected an action.
// errors.Is matches ErrInvalidTransition.
type InvalidTransitionError struct {
	From   Status
	Action string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from Status, action string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in status %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> AwaitingPickup ──> Completed
//	   │              │
//	   └──────────────┴──> Cancelled
//
// Completed and Cancelled are final. Completion happens only through token
// redemption, which the repository performs atomically.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status right after finalize, before the order
	// has been handed to the counter.
	Created

	// AwaitingPickup means the order is placed and its pickup token is live.
	AwaitingPickup

	// Completed means the pickup token was redeemed. Final.
	Completed

	// Cancelled means the order was withdrawn and its token invalidated. Final.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Created:        "created",
		AwaitingPickup: "awaiting_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "created",
		AwaitingPickup: "awaiting_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses a persisted status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid order status", s)
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid order status", s)
	}
	return nil
}

// String returns the persisted name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// AwaitPickup transitions the status to AwaitingPickup.
//
// Valid transitions:
//   - Created -> AwaitingPickup
func (s Status) AwaitPickup() (Status, error) {
	if s != Created {
		return Unknown, NewInvalidTransitionError(s, "place")
	}
	return AwaitingPickup, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - AwaitingPickup -> Completed
func (s Status) Complete() (Status, error) {
	if s != AwaitingPickup {
		return Unknown, NewInvalidTransitionError(s, "complete")
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Created -> Cancelled
//   - AwaitingPickup -> Cancelled
//
// Completed orders cannot be cancelled; their token has already been
// redeemed and the drinks handed over.
func (s Status) Cancel() (Status, error) {
	if s != Created && s != AwaitingPickup {
		return Unknown, NewInvalidTransitionError(s, "cancel")
	}
	return Cancelled, nil
}
