package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) drop(ctx context.Context, req *Request) (game.Status, error) {
	if req.Arg == "" {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You did not specify an item to drop.")
	}
	name := req.Arg
	if def := h.item(name); def != nil {
		name = def.Name
	}
	if _, err := req.Player.Inventory.Remove(map[string]int{name: 1}); err != nil {
		return game.StatusNoAction, ledgerError(err, name)
	}
	req.Printf("You dropped the %s.", name)
	return game.StatusSuccess, nil
}
