package commands

import (
	"errors"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand represents a checkout request: turn the identity's
// finished conversation into a placed order with a pickup token.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	identity string

	guard guard.ConstructorGuard
}

// NewFinalizeOrderCommand creates a checkout command. Validates that the
// order ID is a constructed UUID and the identity is not empty.
func NewFinalizeOrderCommand(orderID kernel.UUID, identity string) (FinalizeOrderCommand, error) {
	cmd := FinalizeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIdentity(identity),
	); err != nil {
		return FinalizeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c FinalizeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Identity returns the customer identity checking out.
func (c FinalizeOrderCommand) Identity() string {
	return c.identity
}

func (c *FinalizeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FinalizeOrderCommand) setIdentity(identity string) error {
	if identity == "" {
		return ErrIdentityIsRequired
	}

	c.identity = identity
	return nil
}
