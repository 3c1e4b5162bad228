package game

import (
	"fmt"
	"slices"
	"strings"
)

// Inventory is the ordered list of item instances a player carries.
type Inventory []ItemInstance

// Count returns the number of instances named name.
func (inv Inventory) Count(name string) int {
	n := 0
	for _, ii := range inv {
		if ii.Name == name {
			n++
		}
	}
	return n
}

// Find returns the index of the first instance named name, or -1.
func (inv Inventory) Find(name string) int {
	return slices.IndexFunc(inv, func(ii ItemInstance) bool { return ii.Name == name })
}

// Remove takes the requested quantity of each named item out of the
// inventory and returns the removed instances. Either every requirement is
// met and all are removed, or the inventory is left untouched and
// ErrInsufficientItems is returned.
func (inv *Inventory) Remove(reqs map[string]int) ([]ItemInstance, error) {
	names := sortedKeys(reqs)
	for _, name := range names {
		if reqs[name] < 0 {
			return nil, fmt.Errorf("%w: negative quantity of %s", ErrInvalidArgument, name)
		}
		if have := inv.Count(name); have < reqs[name] {
			return nil, fmt.Errorf("%w: need %d %s, have %d", ErrInsufficientItems, reqs[name], name, have)
		}
	}

	var removed []ItemInstance
	for _, name := range names {
		for range reqs[name] {
			idx := inv.Find(name)
			removed = append(removed, (*inv)[idx])
			*inv = slices.Delete(*inv, idx, idx+1)
		}
	}
	return removed, nil
}

// GiveItem adds the requested quantities to the player. Hidden items are
// only discovered and never take a slot. Capacity granted by items in the
// batch counts toward the slot check for the rest of the batch. If the
// non-hidden units do not fit, nothing changes and ErrInventoryFull is
// returned.
func GiveItem(p *Player, items ItemSource, reqs map[string]int, n Notifier) error {
	names := sortedKeys(reqs)

	capacity := p.MaxInventorySlots
	cost := 0
	for _, name := range names {
		qty := reqs[name]
		if qty < 0 {
			return fmt.Errorf("%w: negative quantity of %s", ErrInvalidArgument, name)
		}
		def := items.Item(name)
		if def == nil {
			return fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, name)
		}
		capacity += def.Capacity * qty
		if !def.Hidden {
			cost += qty
		}
	}
	if len(p.Inventory)+cost > capacity {
		return fmt.Errorf("%w: %d more items will not fit in %d slots", ErrInventoryFull, cost, capacity)
	}

	var picked []string
	for _, name := range names {
		qty := reqs[name]
		if qty == 0 {
			continue
		}
		def := items.Item(name)
		if def.Capacity > 0 {
			p.MaxInventorySlots += def.Capacity * qty
			n.Notify(fmt.Sprintf("Your inventory can now hold %d items.", p.MaxInventorySlots))
		}
		p.Discover(name)
		picked = append(picked, fmt.Sprintf("%dx %s", qty, name))
		if def.Hidden {
			continue
		}
		for range qty {
			p.Inventory = append(p.Inventory, def.NewInstance())
		}
	}
	if len(picked) > 0 {
		n.Notify(fmt.Sprintf("You picked up: %s!", strings.Join(picked, ", ")))
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
