package commands

import (
	"errors"

	"coffeeshop/internal/pkg/guard"
)

var (
	ErrVerifyTokenCommandIsNotConstructed = errors.New(
		"VerifyTokenCommand must be created via NewVerifyTokenCommand constructor",
	)
	ErrTokenIsRequired = errors.New("token is required")
)

// VerifyTokenCommand represents a pickup token presented at the counter.
type VerifyTokenCommand struct { //nolint:recvcheck //using for validation
	token string

	guard guard.ConstructorGuard
}

// NewVerifyTokenCommand creates a redemption command.
// Validates that the token is not empty.
func NewVerifyTokenCommand(token string) (VerifyTokenCommand, error) {
	cmd := VerifyTokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setToken(token); err != nil {
		return VerifyTokenCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyTokenCommand) Validate() error {
	return c.guard.Validate(ErrVerifyTokenCommandIsNotConstructed)
}

// Token returns the presented pickup token.
func (c VerifyTokenCommand) Token() string {
	return c.token
}

func (c *VerifyTokenCommand) setToken(token string) error {
	if token == "" {
		return ErrTokenIsRequired
	}

	c.token = token
	return nil
}
