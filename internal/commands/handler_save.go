package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) save(ctx context.Context, req *Request) (game.Status, error) {
	if h.saver == nil {
		return game.StatusNoAction, NewUserError(game.ErrUnknownCommand, "Saving is not available.")
	}
	if err := h.saver.SavePlayer(ctx, req.Player); err != nil {
		return game.StatusNoAction, fmt.Errorf("saving player %q: %w", req.Player.Name, err)
	}
	req.Printf("Your progress has been saved.")
	return game.StatusNoAction, nil
}
