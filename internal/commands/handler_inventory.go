package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
)

func (h *Handler) inventory(ctx context.Context, req *Request) (game.Status, error) {
	p := req.Player
	req.Printf("%d/%d items full", len(p.Inventory), p.MaxInventorySlots)
	if len(p.Inventory) == 0 {
		req.Printf("You have nothing!")
		return game.StatusNoAction, nil
	}
	for _, line := range FormatInventoryItems(p.Inventory) {
		req.Notify(line)
	}
	return game.StatusSuccess, nil
}

// FormatInventoryItems returns one line per item name in order of first
// appearance, with a count and the worst durability among the copies.
func FormatInventoryItems(inv game.Inventory) []string {
	type entry struct {
		count int
		worst *game.ItemInstance
	}
	var order []string
	entries := map[string]*entry{}
	for i := range inv {
		ii := &inv[i]
		e, ok := entries[ii.Name]
		if !ok {
			e = &entry{}
			entries[ii.Name] = e
			order = append(order, ii.Name)
		}
		e.count++
		if !ii.Unbreakable && (e.worst == nil || ii.Durability < e.worst.Durability) {
			e.worst = ii
		}
	}

	lines := make([]string, 0, len(order))
	for _, name := range order {
		e := entries[name]
		line := fmt.Sprintf("  %s x%d", name, e.count)
		if e.worst != nil && e.worst.MaxDurability > 0 {
			line += fmt.Sprintf(" (%d/%d)", e.worst.Durability, e.worst.MaxDurability)
		}
		lines = append(lines, line)
	}
	return lines
}
