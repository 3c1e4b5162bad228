package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) equip(ctx context.Context, req *Request) (game.Status, error) {
	if req.Arg == "" {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "What do you want to equip?")
	}
	p := req.Player
	def := h.item(req.Arg)
	if def == nil || !def.Equippable {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You can't equip that.")
	}

	removed, err := p.Inventory.Remove(map[string]int{def.Name: 1})
	if err != nil {
		return game.StatusNoAction, ledgerError(err, def.Name)
	}
	// The freed slot always fits the old shield.
	if p.Shield != nil {
		p.Inventory = append(p.Inventory, *p.Shield)
		req.Printf("You take off the %s.", p.Shield.Name)
	}
	shield := removed[0]
	p.Shield = &shield
	req.Printf("You equipped the %s.", shield.Name)
	return game.StatusSuccess, nil
}

func (h *Handler) unequip(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	if p.Shield == nil {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You have nothing equipped.")
	}
	if len(p.Inventory) >= p.MaxInventorySlots {
		return game.StatusNoAction, NewUserError(game.ErrInventoryFull, "Your inventory is full! Please drop something first.")
	}
	p.Inventory = append(p.Inventory, *p.Shield)
	req.Printf("You take off the %s.", p.Shield.Name)
	p.Shield = nil
	return game.StatusSuccess, nil
}
