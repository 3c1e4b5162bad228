package combat

import (
	"fmt"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
)

// Strike resolves one blow by the player against target using weapon. The
// caller has already checked that the player holds the weapon and any ammo
// it needs. A carried breakable weapon loses one point of durability and
// one unit of ammo is used up.
func (r *Resolver) Strike(p *game.Player, target *game.Encounter, weapon *game.Item, n game.Notifier) int {
	move := "hit"
	if len(weapon.Moves) > 0 {
		move = dice.Choice(r.roller, weapon.Moves)
	}
	dmg := max(0, weapon.Strength.Roll(r.roller))
	target.Health -= dmg
	n.Notify(fmt.Sprintf("You %s the %s, doing %d HP of damage! It %s it.", move, target.Name, dmg, DamageVerb(dmg)))

	if !weapon.Hidden {
		if idx := p.Inventory.Find(weapon.Name); idx >= 0 {
			if _, broken := p.Inventory[idx].Wear(1); broken {
				p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
				n.Notify(fmt.Sprintf("Your %s broke!", weapon.Name))
			}
		}
	}

	if weapon.Ammo != "" {
		if _, err := p.Inventory.Remove(map[string]int{weapon.Ammo: 1}); err == nil {
			n.Notify(fmt.Sprintf("You have %d %s left.", p.Inventory.Count(weapon.Ammo), weapon.Ammo))
		}
	}
	return dmg
}
