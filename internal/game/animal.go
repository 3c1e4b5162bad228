package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/dice"
)

// Animal is an encounter template loaded from asset files. Templates are never
// mutated; encounters are spawned as copies.
type Animal struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Health      int                   `json:"health"`
	MaxHealth   int                   `json:"max_health"`
	Strength    dice.Range            `json:"strength"`
	Moves       []string              `json:"moves"`
	Friendly    bool                  `json:"friendly,omitempty"`
	Loot        map[string]dice.Range `json:"loot,omitempty"`
}

// Spawn returns a new encounter copied from the template.
func (a *Animal) Spawn() *Encounter {
	maxHealth := a.MaxHealth
	if maxHealth == 0 {
		maxHealth = a.Health
	}
	return &Encounter{
		Name:        a.Name,
		Description: a.Description,
		Health:      a.Health,
		MaxHealth:   maxHealth,
		Strength:    a.Strength,
		Moves:       slices.Clone(a.Moves),
		Friendly:    a.Friendly,
		Loot:        maps.Clone(a.Loot),
	}
}

// Validate satisfies storage.ValidatingSpec
func (a *Animal) Validate() error {
	el := errors.NewErrorList()
	if a.Name == "" {
		el.Add(fmt.Errorf("animal name is required"))
	}
	if a.Health <= 0 {
		el.Add(fmt.Errorf("animal health must be positive"))
	}
	if a.MaxHealth != 0 && a.MaxHealth < a.Health {
		el.Add(fmt.Errorf("animal max_health must be at least health"))
	}
	if a.Strength.Min() < 0 {
		el.Add(fmt.Errorf("animal strength must not be negative"))
	}
	if !a.Friendly && len(a.Moves) == 0 {
		el.Add(fmt.Errorf("hostile animal %q needs at least one move", a.Name))
	}
	if !a.Friendly && len(a.Loot) > 0 {
		el.Add(fmt.Errorf("hostile animal %q cannot carry loot", a.Name))
	}
	return el.Err()
}

// Encounter is a live hostile or friendly animal attached to one player.
type Encounter struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Health      int                   `json:"health"`
	MaxHealth   int                   `json:"max_health"`
	Strength    dice.Range            `json:"strength"`
	Moves       []string              `json:"moves,omitempty"`
	Friendly    bool                  `json:"friendly,omitempty"`
	Loot        map[string]dice.Range `json:"loot,omitempty"`
}

func (e *Encounter) IsDead() bool { return e.Health <= 0 }
