package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-rpg/internal/game"
)

// give and spawn are only reachable in dev mode.

func (h *Handler) give(ctx context.Context, req *Request) (game.Status, error) {
	def := h.item(req.Arg)
	if def == nil {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "Unrecognized item name %s", req.Arg)
	}
	if err := game.GiveItem(req.Player, h.content, map[string]int{def.Name: 1}, req); err != nil {
		return game.StatusNoAction, ledgerError(err, def.Name)
	}
	return game.StatusSuccess, nil
}

func (h *Handler) spawn(ctx context.Context, req *Request) (game.Status, error) {
	var tmpl *game.Animal
	for _, name := range h.content.AnimalNames() {
		if strings.EqualFold(name, req.Arg) {
			tmpl = h.content.Animal(name)
			break
		}
	}
	if tmpl == nil {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "Unrecognized animal name %s", req.Arg)
	}

	p := req.Player
	if tmpl.Friendly {
		p.Pet = tmpl.Spawn()
		req.Printf("A friendly %s appears!", tmpl.Name)
	} else {
		p.Opponent = tmpl.Spawn()
		req.Printf("An enemy %s appears!", tmpl.Name)
	}
	return game.StatusSuccess, nil
}
