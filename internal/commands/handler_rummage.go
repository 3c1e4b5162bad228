package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) rummage(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	if len(p.Inventory) >= p.MaxInventorySlots {
		return game.StatusNoAction, NewUserError(game.ErrInventoryFull, "Your inventory is full! Please drop something first.")
	}

	p.AdjustHunger(-dice.Between(h.roller, 3, 5))

	name := h.content.RandomItem(h.roller)
	if name == "" || name == game.NothingItem {
		req.Printf("You didn't find anything!")
		return game.StatusSuccess | game.StatusMoved, nil
	}
	if err := game.GiveItem(p, h.content, map[string]int{name: 1}, req); err != nil {
		return game.StatusNoAction, ledgerError(err, name)
	}
	return game.StatusSuccess | game.StatusMoved, nil
}
