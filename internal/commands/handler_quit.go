package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) quit(ctx context.Context, req *Request) (game.Status, error) {
	req.Printf("Goodbye!")
	req.Quit = true
	return game.StatusNoAction, nil
}
