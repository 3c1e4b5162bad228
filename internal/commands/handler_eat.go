package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

// eat consumes the named food, or the first food carried when none is
// named.
func (h *Handler) eat(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	if p.Hunger >= game.MaxVital {
		req.Printf("You are not hungry.")
		return game.StatusNoAction, nil
	}

	var food *game.Item
	if req.Arg != "" {
		food = h.item(req.Arg)
		if food == nil || !food.IsFood() {
			return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You can't eat that.")
		}
	} else {
		for _, ii := range p.Inventory {
			if def := h.content.Item(ii.Name); def != nil && def.IsFood() {
				food = def
				break
			}
		}
		if food == nil {
			return game.StatusNoAction, NewUserError(game.ErrInsufficientItems, "You have nothing to eat.")
		}
	}

	if _, err := p.Inventory.Remove(map[string]int{food.Name: 1}); err != nil {
		return game.StatusNoAction, ledgerError(err, food.Name)
	}
	p.AdjustHunger(food.Hunger.Roll(h.roller))
	req.Printf("You ate the %s. Hunger: %d/%d", food.Name, game.ClampVital(p.Hunger), game.MaxVital)
	return game.StatusSuccess, nil
}
