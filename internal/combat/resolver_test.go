package combat

import (
	"slices"
	"testing"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/storage"
	"github.com/pixil98/go-testutil"
)

func newTestContent(t *testing.T) *game.Catalog {
	t.Helper()
	items := map[string]*game.Item{
		"fists":   {Name: game.FistsItem, Hidden: true, Strength: dice.Range{1, 3}, Moves: []string{"punch"}},
		"rations": {Name: "Rations", Rarity: 1, Hunger: dice.Range{10, 20}},
		"wood":    {Name: "Wood", Rarity: 1},
		"arrow":   {Name: "Arrow"},
		"bow":     {Name: "Bow", Durability: 5, Strength: dice.Range{4, 8}, Moves: []string{"shoot"}, Ammo: "Arrow"},
		"sword":   {Name: "Sword", Durability: 20, Strength: dice.Range{5, 10}, Moves: []string{"slash"}},
		"shield":  {Name: "Wooden Shield", Durability: 10, Equippable: true},
		"cloak":   {Name: "Camo Cloak", Equippable: true, Unbreakable: true, Concealing: true},
	}
	animals := map[string]*game.Animal{
		"wolf":  {Name: "Wolf", Description: "A grey wolf.", Health: 20, Strength: dice.Range{2, 6}, Moves: []string{"bites"}},
		"sheep": {Name: "Sheep", Health: 10, Friendly: true, Loot: map[string]dice.Range{"Wood": {1, 2}}},
	}
	c, err := game.NewCatalog(storage.NewMemoryStore(items), storage.NewMemoryStore(animals))
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return c
}

type countingObserver struct {
	spawned int
	ended   []string
}

func (o *countingObserver) EncounterSpawned(bool) { o.spawned++ }
func (o *countingObserver) EncounterEnded(_ bool, reason string) {
	o.ended = append(o.ended, reason)
}

func TestShouldTick(t *testing.T) {
	tests := map[string]struct {
		status    game.Status
		inCombat  bool
		expTicked bool
	}{
		"no action":              {status: game.StatusNoAction, expTicked: false},
		"no action in combat":    {status: game.StatusNoAction, inCombat: true, expTicked: false},
		"success without moving": {status: game.StatusSuccess, expTicked: false},
		"success in combat":      {status: game.StatusSuccess, inCombat: true, expTicked: true},
		"moved":                  {status: game.StatusSuccess | game.StatusMoved, expTicked: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := game.NewPlayer("c1", "Alex", 10)
			if tt.inCombat {
				p.Opponent = &game.Encounter{Name: "Wolf", Health: 5}
			}
			testutil.AssertEqual(t, "ticked", ShouldTick(tt.status, p), tt.expTicked)
		})
	}
}

func TestResolver_HostileTick(t *testing.T) {
	content := newTestContent(t)

	tests := map[string]struct {
		setup       func(p *game.Player)
		rolls       []int
		expOpponent string
		expHealth   int
		expShield   int // -1 when no shield remains
		expNotices  []string
	}{
		"spawns on a one": {
			rolls:       []int{0, 0},
			expOpponent: "Wolf",
			expHealth:   100,
			expShield:   -1,
			expNotices:  []string{"You encountered an enemy Wolf!", "A grey wolf."},
		},
		"no spawn otherwise": {
			rolls:     []int{5},
			expHealth: 100,
			expShield: -1,
		},
		"concealment lowers the odds": {
			setup: func(p *game.Player) {
				p.Shield = &game.ItemInstance{Name: "Camo Cloak", Unbreakable: true}
			},
			rolls:     []int{30},
			expHealth: 100,
			expShield: 0,
		},
		"opponent strikes": {
			setup: func(p *game.Player) {
				p.Opponent = content.Animal("Wolf").Spawn()
			},
			rolls:       []int{0, 3},
			expOpponent: "Wolf",
			expHealth:   95,
			expShield:   -1,
			expNotices:  []string{"The Wolf bites, doing 5 HP of damage! It hurts you."},
		},
		"shield absorbs half rounded up": {
			setup: func(p *game.Player) {
				p.Opponent = content.Animal("Wolf").Spawn()
				p.Shield = &game.ItemInstance{Name: "Wooden Shield", Durability: 10, MaxDurability: 10}
			},
			rolls:       []int{0, 3},
			expOpponent: "Wolf",
			expHealth:   98,
			expShield:   7,
			expNotices: []string{
				"The Wolf bites, doing 5 HP of damage! It hurts you.",
				"Your Wooden Shield absorbed 3 HP of damage.",
			},
		},
		"shield breaks": {
			setup: func(p *game.Player) {
				p.Opponent = content.Animal("Wolf").Spawn()
				p.Shield = &game.ItemInstance{Name: "Wooden Shield", Durability: 2, MaxDurability: 10}
			},
			rolls:       []int{0, 3},
			expOpponent: "Wolf",
			expHealth:   97,
			expShield:   -1,
			expNotices: []string{
				"The Wolf bites, doing 5 HP of damage! It hurts you.",
				"Your Wooden Shield absorbed 2 HP of damage.",
				"Your Wooden Shield broke!",
			},
		},
		"unbreakable shield absorbs nothing": {
			setup: func(p *game.Player) {
				p.Opponent = content.Animal("Wolf").Spawn()
				p.Shield = &game.ItemInstance{Name: "Camo Cloak", Unbreakable: true}
			},
			rolls:       []int{0, 3},
			expOpponent: "Wolf",
			expHealth:   95,
			expShield:   0,
			expNotices:  []string{"The Wolf bites, doing 5 HP of damage! It hurts you."},
		},
		"dead opponent does not strike": {
			setup: func(p *game.Player) {
				p.Opponent = content.Animal("Wolf").Spawn()
				p.Opponent.Health = 0
			},
			rolls:       []int{0, 3},
			expOpponent: "Wolf",
			expHealth:   100,
			expShield:   -1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := game.NewPlayer("c1", "Alex", 10)
			if tt.setup != nil {
				tt.setup(p)
			}
			var notices game.Notices
			r := NewResolver(content, dice.NewFixed(tt.rolls...))

			r.HostileTick(p, &notices)

			opponent := ""
			if p.Opponent != nil {
				opponent = p.Opponent.Name
			}
			shield := -1
			if p.Shield != nil {
				shield = p.Shield.Durability
			}
			testutil.AssertEqual(t, "opponent", opponent, tt.expOpponent)
			testutil.AssertEqual(t, "health", p.Health, tt.expHealth)
			testutil.AssertEqual(t, "shield", shield, tt.expShield)
			testutil.AssertEqual(t, "notices", slices.Equal(notices, game.Notices(tt.expNotices)), true)
		})
	}
}

func TestResolver_HostileTick_DamageBounds(t *testing.T) {
	content := newTestContent(t)
	src := dice.NewSource(42)
	r := NewResolver(content, src)

	for range 200 {
		p := game.NewPlayer("c1", "Alex", 10)
		p.Opponent = content.Animal("Wolf").Spawn()
		p.Shield = &game.ItemInstance{Name: "Wooden Shield", Durability: 1 + src.IntN(10)}
		before := p.Shield.Durability

		r.HostileTick(p, &game.Notices{})

		after := 0
		if p.Shield != nil {
			after = p.Shield.Durability
		}
		absorbed := before - after
		taken := game.MaxVital - p.Health
		dmg := absorbed + taken
		if dmg < 2 || dmg > 6 {
			t.Fatalf("damage %d outside [2, 6]", dmg)
		}
		if absorbed > (dmg+1)/2 || absorbed > before {
			t.Fatalf("absorbed %d of %d with %d durability", absorbed, dmg, before)
		}
	}
}

func TestResolver_FriendlyTick(t *testing.T) {
	content := newTestContent(t)

	tests := map[string]struct {
		food       bool
		pet        bool
		rolls      []int
		expPet     bool
		expNotices []string
	}{
		"spawns on a one": {
			rolls:      []int{0, 0},
			expPet:     true,
			expNotices: []string{"You encountered a friendly Sheep!"},
		},
		"fifteen sided without food": {
			rolls: []int{10},
		},
		"ten sided with food": {
			food:       true,
			rolls:      []int{10, 0},
			expPet:     true,
			expNotices: []string{"You encountered a friendly Sheep!"},
		},
		"wanders off without food": {
			pet:        true,
			expNotices: []string{"The Sheep wandered off."},
		},
		"stays with food": {
			food:   true,
			pet:    true,
			expPet: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := game.NewPlayer("c1", "Alex", 10)
			if tt.food {
				p.Inventory = game.Inventory{{Name: "Rations"}}
			}
			if tt.pet {
				p.Pet = content.Animal("Sheep").Spawn()
			}
			var notices game.Notices
			obs := &countingObserver{}
			r := NewResolver(content, dice.NewFixed(tt.rolls...), WithObserver(obs))

			r.FriendlyTick(p, &notices)

			testutil.AssertEqual(t, "has pet", p.Pet != nil, tt.expPet)
			testutil.AssertEqual(t, "notices", slices.Equal(notices, game.Notices(tt.expNotices)), true)
		})
	}
}

func TestResolver_Tick(t *testing.T) {
	content := newTestContent(t)
	p := game.NewPlayer("c1", "Alex", 10)
	r := NewResolver(content, dice.NewFixed(0, 0, 0, 0))

	testutil.AssertEqual(t, "no action", r.Tick(p, game.StatusNoAction, &game.Notices{}), false)
	testutil.AssertEqual(t, "opponent untouched", p.Opponent == nil, true)

	testutil.AssertEqual(t, "moved", r.Tick(p, game.StatusSuccess|game.StatusMoved, &game.Notices{}), true)
	testutil.AssertEqual(t, "opponent", p.Opponent.Name, "Wolf")
	testutil.AssertEqual(t, "pet", p.Pet.Name, "Sheep")
}
