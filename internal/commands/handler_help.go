package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) help(ctx context.Context, req *Request) (game.Status, error) {
	if h.registry == nil {
		return game.StatusNoAction, fmt.Errorf("help: registry not built")
	}
	for _, c := range h.registry.Visible(req.DevMode) {
		req.Printf("%-20s %s", c.Usage, c.Help)
	}
	return game.StatusSuccess, nil
}
