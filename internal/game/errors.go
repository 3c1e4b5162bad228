package game

import "errors"

// Error kinds reported back to the connection that caused them. None of them
// end a session.
var (
	ErrInsufficientItems = errors.New("insufficient items")
	ErrInventoryFull     = errors.New("inventory full")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrUsernameTaken     = errors.New("username taken")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotJoined         = errors.New("not joined")
	ErrPlayerDead        = errors.New("player is dead")
)

var kindNames = []struct {
	err  error
	name string
}{
	{ErrInsufficientItems, "InsufficientItems"},
	{ErrInventoryFull, "InventoryFull"},
	{ErrUnknownCommand, "UnknownCommand"},
	{ErrUsernameTaken, "UsernameTaken"},
	{ErrInvalidArgument, "InvalidArgument"},
	{ErrNotJoined, "NotJoined"},
	{ErrPlayerDead, "PlayerDead"},
}

// KindName returns the wire name of the error kind err wraps, or "Internal"
// when err is not one of the reported kinds.
func KindName(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Internal"
}
