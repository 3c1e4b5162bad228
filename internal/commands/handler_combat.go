package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) attack(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	if p.Opponent == nil {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You are not fighting anything.")
	}
	weapon, err := h.weapon(p, req.Arg)
	if err != nil {
		return game.StatusNoAction, err
	}
	h.combat.Strike(p, p.Opponent, weapon, req)
	return game.StatusSuccess, nil
}

// slaughter attacks the player's own pet. A pet killed this way pays out
// its loot in the death check.
func (h *Handler) slaughter(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	if p.Pet == nil {
		return game.StatusNoAction, NewUserError(game.ErrInvalidArgument, "You have no animal to slaughter.")
	}
	weapon, err := h.weapon(p, req.Arg)
	if err != nil {
		return game.StatusNoAction, err
	}
	h.combat.Strike(p, p.Pet, weapon, req)
	return game.StatusSuccess, nil
}

// weapon resolves the weapon the player wants to use and checks they hold
// it and its ammo. An empty name means bare fists.
func (h *Handler) weapon(p *game.Player, name string) (*game.Item, error) {
	if name == "" {
		name = game.FistsItem
	}
	def := h.item(name)
	if def == nil {
		return nil, NewUserError(game.ErrInvalidArgument, "You've never heard of a %s.", name)
	}
	if !def.IsWeapon() {
		return nil, NewUserError(game.ErrInvalidArgument, "You can't attack with a %s.", def.Name)
	}
	if !def.Hidden && p.Inventory.Count(def.Name) == 0 {
		return nil, NewUserError(game.ErrInsufficientItems, "You don't have that weapon.")
	}
	if def.Ammo != "" && p.Inventory.Count(def.Ammo) == 0 {
		return nil, NewUserError(game.ErrInsufficientItems, "You have no %s left.", def.Ammo)
	}
	return def, nil
}
