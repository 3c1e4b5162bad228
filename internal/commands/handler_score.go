package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/game"
)

// status reports the player's vitals and company. It does not take a turn.
func (h *Handler) status(ctx context.Context, req *Request) (game.Status, error) {
	ps := req.Player.Public()
	req.Printf("Health: %d/%d  Hunger: %d/%d", ps.Health, game.MaxVital, ps.Hunger, game.MaxVital)
	req.Printf("Inventory: %d/%d", ps.InventorySize, ps.MaxInventorySlots)
	if ps.Shield != nil {
		if ps.Shield.Unbreakable {
			req.Printf("Wearing: %s", ps.Shield.Name)
		} else {
			req.Printf("Wearing: %s (%d/%d)", ps.Shield.Name, ps.Shield.Durability, ps.Shield.MaxDurability)
		}
	}
	if ps.Opponent != nil {
		req.Printf("Fighting: %s (%d/%d)", ps.Opponent.Name, ps.Opponent.Health, ps.Opponent.MaxHealth)
	}
	if ps.Pet != nil {
		req.Printf("Companion: %s (%d/%d)", ps.Pet.Name, ps.Pet.Health, ps.Pet.MaxHealth)
	}
	return game.StatusNoAction, nil
}
