package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-rpg/internal/game"
)

// craft turns discovered recipes into items. Ingredients are only consumed
// when the product can be carried.
func (h *Handler) craft(ctx context.Context, req *Request) (game.Status, error) {
	if req.Arg == "" {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You did not specify an item to craft.")
	}
	p := req.Player
	item := h.item(req.Arg)
	if item == nil || len(item.Ingredients) == 0 || !p.HasDiscovered(item.Name) {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You've never heard of that before.")
	}

	removed, err := p.Inventory.Remove(item.Ingredients)
	if errors.Is(err, game.ErrInsufficientItems) {
		return game.StatusNoAction, NewUserError(game.ErrInsufficientItems, "To craft a %s you need: %s", item.Name, recipe(item))
	}
	if err != nil {
		return game.StatusNoAction, err
	}

	if err := game.GiveItem(p, h.content, map[string]int{item.Name: 1}, req); err != nil {
		p.Inventory = append(p.Inventory, removed...)
		return game.StatusNoAction, ledgerError(err, item.Name)
	}
	req.Printf("You crafted a %s!", item.Name)
	return game.StatusSuccess, nil
}

func recipe(item *game.Item) string {
	names := make([]string, 0, len(item.Ingredients))
	for name := range item.Ingredients {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Ingredients[name], name))
	}
	return strings.Join(parts, ", ")
}
