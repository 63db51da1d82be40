package commands

import (
	"errors"

	"coffeeshop/internal/pkg/guard"
)

var (
	ErrStartSessionCommandIsNotConstructed = errors.New(
		"StartSessionCommand must be created via NewStartSessionCommand constructor",
	)
	ErrIdentityIsRequired = errors.New("identity is required")
)

// StartSessionCommand represents a request to open (or resume) the ordering
// conversation for a customer identity.
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	identity string

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a command to start a conversation.
// Validates that the identity is not empty.
func NewStartSessionCommand(identity string) (StartSessionCommand, error) {
	cmd := StartSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setIdentity(identity); err != nil {
		return StartSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

// Identity returns the customer identity starting the conversation.
func (c StartSessionCommand) Identity() string {
	return c.identity
}

func (c *StartSessionCommand) setIdentity(identity string) error {
	if identity == "" {
		return ErrIdentityIsRequired
	}

	c.identity = identity
	return nil
}
