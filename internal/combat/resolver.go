// Package combat advances the per-player encounter simulation: spawning
// hostile and friendly animals, resolving single exchanges of damage, and
// checking for death and loot once the turn is over.
package combat

import (
	"fmt"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
)

// Encounter odds, expressed as "one in N" per tick.
const (
	HostileOdds          = 30
	HostileOddsConcealed = 90
	FriendlyOdds         = 15
	FriendlyOddsFood     = 10
)

// Content is the static data the resolver draws encounters and items from.
type Content interface {
	game.ItemSource
	RandomHostile(r dice.Roller) *game.Animal
	RandomFriendly(r dice.Roller) *game.Animal
}

// Observer is told about encounter outcomes. It is used for metrics.
type Observer interface {
	EncounterSpawned(friendly bool)
	EncounterEnded(friendly bool, reason string)
}

type nopObserver struct{}

func (nopObserver) EncounterSpawned(bool)       {}
func (nopObserver) EncounterEnded(bool, string) {}

// Resolver runs the combat, pet and death steps of a turn. All randomness
// comes from its Roller.
type Resolver struct {
	content  Content
	roller   dice.Roller
	observer Observer
}

// ResolverOpt configures a Resolver.
type ResolverOpt func(*Resolver)

// WithObserver reports encounter outcomes to o.
func WithObserver(o Observer) ResolverOpt {
	return func(r *Resolver) {
		r.observer = o
	}
}

func NewResolver(content Content, roller dice.Roller, opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		content:  content,
		roller:   roller,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ShouldTick reports whether a command with the given status owes the
// player a combat and pet tick: it must have succeeded, and either moved the
// player or left them already fighting.
func ShouldTick(status game.Status, p *game.Player) bool {
	if !status.Has(game.StatusSuccess) {
		return false
	}
	return status.Has(game.StatusMoved) || p.InCombat()
}

// Tick runs the hostile tick and then the friendly tick when the status
// calls for it. It reports whether anything ran.
func (r *Resolver) Tick(p *game.Player, status game.Status, n game.Notifier) bool {
	if !ShouldTick(status, p) {
		return false
	}
	r.HostileTick(p, n)
	r.FriendlyTick(p, n)
	return true
}

// HostileTick either rolls for a new opponent or lets the current one
// strike once.
func (r *Resolver) HostileTick(p *game.Player, n game.Notifier) {
	if p.Opponent == nil {
		odds := HostileOdds
		if p.Concealed(r.content) {
			odds = HostileOddsConcealed
		}
		if !dice.OneIn(r.roller, odds) {
			return
		}
		tmpl := r.content.RandomHostile(r.roller)
		if tmpl == nil {
			return
		}
		p.Opponent = tmpl.Spawn()
		r.observer.EncounterSpawned(false)
		n.Notify(fmt.Sprintf("You encountered an enemy %s!", p.Opponent.Name))
		if p.Opponent.Description != "" {
			n.Notify(p.Opponent.Description)
		}
		return
	}

	// A killing blow this turn leaves the body for the death check.
	if p.Opponent.IsDead() {
		return
	}

	move := "attacks"
	if len(p.Opponent.Moves) > 0 {
		move = dice.Choice(r.roller, p.Opponent.Moves)
	}
	dmg := max(0, p.Opponent.Strength.Roll(r.roller))
	n.Notify(fmt.Sprintf("The %s %s, doing %d HP of damage! It %s you.", p.Opponent.Name, move, dmg, DamageVerb(dmg)))

	dmg -= r.absorb(p, dmg, n)
	p.AdjustHealth(-dmg)
}

// absorb lets a breakable shield take up to half of dmg, rounded up, out of
// its own durability. It returns the amount absorbed.
func (r *Resolver) absorb(p *game.Player, dmg int, n game.Notifier) int {
	if p.Shield == nil || p.Shield.Unbreakable || dmg <= 0 {
		return 0
	}
	absorbed, broken := p.Shield.Wear((dmg + 1) / 2)
	if absorbed > 0 {
		n.Notify(fmt.Sprintf("Your %s absorbed %d HP of damage.", p.Shield.Name, absorbed))
	}
	if broken {
		n.Notify(fmt.Sprintf("Your %s broke!", p.Shield.Name))
		p.Shield = nil
	}
	return absorbed
}

// FriendlyTick rolls for a new pet, or sends the current pet away when the
// player has nothing to feed it.
func (r *Resolver) FriendlyTick(p *game.Player, n game.Notifier) {
	hasFood := p.HasFood(r.content)

	if p.Pet == nil {
		odds := FriendlyOdds
		if hasFood {
			odds = FriendlyOddsFood
		}
		if !dice.OneIn(r.roller, odds) {
			return
		}
		tmpl := r.content.RandomFriendly(r.roller)
		if tmpl == nil {
			return
		}
		p.Pet = tmpl.Spawn()
		r.observer.EncounterSpawned(true)
		n.Notify(fmt.Sprintf("You encountered a friendly %s!", p.Pet.Name))
		if p.Pet.Description != "" {
			n.Notify(p.Pet.Description)
		}
		return
	}

	if !hasFood && !p.Pet.IsDead() {
		n.Notify(fmt.Sprintf("The %s wandered off.", p.Pet.Name))
		r.observer.EncounterEnded(true, "wandered")
		p.Pet = nil
	}
}
