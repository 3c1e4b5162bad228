package commands

import (
	"errors"
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage. Kind is one
// of the game error sentinels and is what errors.Is matches against.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// NewUserError creates a user-facing error of the given kind.
func NewUserError(kind error, format string, args ...any) *UserError {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsUserError returns err as a *UserError if it is one.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// ledgerError turns a failed inventory operation into a message for the
// player. Anything that is not an inventory failure is passed through.
func ledgerError(err error, item string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrInventoryFull):
		return NewUserError(game.ErrInventoryFull, "You don't have room for that. Drop something first.")
	case errors.Is(err, game.ErrInsufficientItems):
		return NewUserError(game.ErrInsufficientItems, "You don't have a %s.", item)
	case errors.Is(err, game.ErrInvalidArgument):
		return NewUserError(game.ErrInvalidArgument, "You've never heard of a %s.", item)
	}
	return err
}
