package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) who(ctx context.Context, req *Request) (game.Status, error) {
	names := h.roster.Names()
	req.Printf("%d online: %s", len(names), strings.Join(names, ", "))
	return game.StatusNoAction, nil
}
