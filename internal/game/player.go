package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
)

const (
	// MaxVital is the ceiling for health and hunger.
	MaxVital = 100

	DefaultInventorySlots = 10
)

// ItemSource looks up item definitions by name.
type ItemSource interface {
	Item(name string) *Item
}

// Notifier receives the side-channel messages a turn produces for its player.
type Notifier interface {
	Notify(msg string)
}

// Notices is a Notifier that collects messages in order.
type Notices []string

func (n *Notices) Notify(msg string) {
	*n = append(*n, msg)
}

// Player is the state of one joined connection. Health and hunger may drop
// below zero inside a turn; the death check turns that into a terminal result
// and every outward view clamps them.
type Player struct {
	ConnID string `json:"-"`
	Name   string `json:"name"`

	Health int `json:"health"`
	Hunger int `json:"hunger"`

	Inventory         Inventory       `json:"inventory"`
	MaxInventorySlots int             `json:"max_inventory_slots"`
	Discovered        map[string]bool `json:"discovered,omitempty"`

	Opponent *Encounter    `json:"opponent,omitempty"`
	Pet      *Encounter    `json:"pet,omitempty"`
	Shield   *ItemInstance `json:"shield,omitempty"`
}

// NewPlayer returns a player at full health and hunger with an empty inventory.
func NewPlayer(connID, name string, slots int) *Player {
	if slots <= 0 {
		slots = DefaultInventorySlots
	}
	return &Player{
		ConnID:            connID,
		Name:              name,
		Health:            MaxVital,
		Hunger:            MaxVital,
		Inventory:         Inventory{},
		MaxInventorySlots: slots,
		Discovered:        map[string]bool{},
	}
}

// Discover records that the player has owned the named item.
func (p *Player) Discover(name string) {
	if p.Discovered == nil {
		p.Discovered = map[string]bool{}
	}
	p.Discovered[name] = true
}

func (p *Player) HasDiscovered(name string) bool {
	return p.Discovered[name]
}

// AdjustHunger adds delta to hunger, capped at MaxVital.
func (p *Player) AdjustHunger(delta int) {
	p.Hunger = min(p.Hunger+delta, MaxVital)
}

// AdjustHealth adds delta to health, capped at MaxVital.
func (p *Player) AdjustHealth(delta int) {
	p.Health = min(p.Health+delta, MaxVital)
}

func (p *Player) InCombat() bool {
	return p.Opponent != nil
}

// HasFood reports whether any carried item is edible.
func (p *Player) HasFood(items ItemSource) bool {
	for _, ii := range p.Inventory {
		if def := items.Item(ii.Name); def != nil && def.IsFood() {
			return true
		}
	}
	return false
}

// Concealed reports whether the equipped item hides the player.
func (p *Player) Concealed(items ItemSource) bool {
	if p.Shield == nil {
		return false
	}
	def := items.Item(p.Shield.Name)
	return def != nil && def.Concealing
}

// Clone returns a deep copy safe to hand to another goroutine.
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	c.Discovered = maps.Clone(p.Discovered)
	c.Opponent = cloneEncounter(p.Opponent)
	c.Pet = cloneEncounter(p.Pet)
	if p.Shield != nil {
		s := *p.Shield
		c.Shield = &s
	}
	return &c
}

func cloneEncounter(e *Encounter) *Encounter {
	if e == nil {
		return nil
	}
	c := *e
	c.Moves = slices.Clone(e.Moves)
	c.Loot = maps.Clone(e.Loot)
	return &c
}

// Validate satisfies storage.ValidatingSpec so players can be persisted.
func (p *Player) Validate() error {
	el := errors.NewErrorList()
	if p.Name == "" {
		el.Add(fmt.Errorf("player name is required"))
	}
	if p.MaxInventorySlots <= 0 {
		el.Add(fmt.Errorf("max_inventory_slots must be positive"))
	}
	if len(p.Inventory) > p.MaxInventorySlots {
		el.Add(fmt.Errorf("inventory holds %d items but only %d slots", len(p.Inventory), p.MaxInventorySlots))
	}
	return el.Err()
}

// ClampVital bounds v to [0, MaxVital] for display.
func ClampVital(v int) int {
	return max(0, min(v, MaxVital))
}

// PublicState is the view of a player sent to other connections.
type PublicState struct {
	ConnID            string         `json:"connection_id"`
	Name              string         `json:"name"`
	Health            int            `json:"health"`
	Hunger            int            `json:"hunger"`
	InventorySize     int            `json:"inventory_size"`
	MaxInventorySlots int            `json:"max_inventory_slots"`
	Opponent          *EncounterView `json:"opponent,omitempty"`
	Pet               *EncounterView `json:"pet,omitempty"`
	Shield            *ItemInstance  `json:"shield,omitempty"`
}

// EncounterView is the displayed state of an encounter.
type EncounterView struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
}

func (p *Player) Public() PublicState {
	ps := PublicState{
		ConnID:            p.ConnID,
		Name:              p.Name,
		Health:            ClampVital(p.Health),
		Hunger:            ClampVital(p.Hunger),
		InventorySize:     len(p.Inventory),
		MaxInventorySlots: p.MaxInventorySlots,
		Opponent:          viewOf(p.Opponent),
		Pet:               viewOf(p.Pet),
	}
	if p.Shield != nil {
		s := *p.Shield
		ps.Shield = &s
	}
	return ps
}

func viewOf(e *Encounter) *EncounterView {
	if e == nil {
		return nil
	}
	return &EncounterView{Name: e.Name, Health: max(0, e.Health), MaxHealth: e.MaxHealth}
}
