package commands

import (
	"errors"

	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/pkg/guard"
)

var (
	ErrSubmitInputCommandIsNotConstructed = errors.New(
		"SubmitInputCommand must be created via NewSubmitInputCommand constructor",
	)
	ErrInputIsRequired = errors.New("input is required")
)

// SubmitInputCommand represents one customer interaction with the ordering
// conversation: a product pick, a size, a level, an add-on toggle, a
// quantity, or a navigation.
type SubmitInputCommand struct { //nolint:recvcheck //using for validation
	identity string
	input    session.Input

	guard guard.ConstructorGuard
}

// NewSubmitInputCommand creates a command carrying one typed input.
// Validates that the identity is not empty and the input is present.
func NewSubmitInputCommand(identity string, input session.Input) (SubmitInputCommand, error) {
	cmd := SubmitInputCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(identity),
		cmd.setInput(input),
	); err != nil {
		return SubmitInputCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitInputCommand) Validate() error {
	return c.guard.Validate(ErrSubmitInputCommandIsNotConstructed)
}

// Identity returns the customer identity submitting the input.
func (c SubmitInputCommand) Identity() string {
	return c.identity
}

// Input returns the typed input to apply.
func (c SubmitInputCommand) Input() session.Input {
	return c.input
}

func (c *SubmitInputCommand) setIdentity(identity string) error {
	if identity == "" {
		return ErrIdentityIsRequired
	}

	c.identity = identity
	return nil
}

func (c *SubmitInputCommand) setInput(input session.Input) error {
	if input == nil {
		return ErrInputIsRequired
	}

	c.input = input
	return nil
}
