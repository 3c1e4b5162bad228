package combat

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-rpg/internal/game"
)

// CheckDeath clears dead encounters, pays out pet loot, and reports whether
// the player died this turn. Hunger is checked before health so exactly one
// reason is returned.
func (r *Resolver) CheckDeath(p *game.Player, n game.Notifier) game.DeathReason {
	if p.Opponent != nil && p.Opponent.IsDead() {
		n.Notify(fmt.Sprintf("The %s died!", p.Opponent.Name))
		r.observer.EncounterEnded(false, "killed")
		p.Opponent = nil
	}

	if p.Pet != nil && p.Pet.IsDead() {
		pet := p.Pet
		p.Pet = nil
		n.Notify(fmt.Sprintf("The %s died!", pet.Name))
		r.observer.EncounterEnded(true, "killed")
		r.payLoot(p, pet, n)
	}

	switch {
	case p.Hunger <= 0:
		return game.DeathStarvation
	case p.Health <= 0:
		return game.DeathKilled
	}
	return game.DeathNone
}

// payLoot rolls each loot entry and gives it to the player. Loot that does
// not fit is lost.
func (r *Resolver) payLoot(p *game.Player, pet *game.Encounter, n game.Notifier) {
	if len(pet.Loot) == 0 {
		return
	}
	reqs := make(map[string]int, len(pet.Loot))
	for _, item := range slices.Sorted(maps.Keys(pet.Loot)) {
		reqs[item] = max(0, pet.Loot[item].Roll(r.roller))
	}
	if err := game.GiveItem(p, r.content, reqs, n); err != nil {
		n.Notify(fmt.Sprintf("You could not carry what the %s left behind.", pet.Name))
	}
}
