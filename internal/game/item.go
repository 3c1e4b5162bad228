package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/dice"
)

// Item defines a kind of item loaded from asset files. Players carry
// ItemInstances copied from it.
type Item struct {
	// Name is the display name and lookup key (e.g. "Camo Cloak")
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	// Durability is copied into every new instance. Zero means the item never wears.
	Durability int `json:"durability"`

	// Rarity weights the item in random finds. Zero keeps it out of the pool.
	Rarity int `json:"rarity"`

	// Hidden items take no inventory slot and are never stored as instances.
	Hidden bool `json:"hidden,omitempty"`

	// Equippable items can be worn in the shield slot.
	Equippable  bool `json:"equippable,omitempty"`
	Unbreakable bool `json:"unbreakable,omitempty"`

	// Concealing items make hostile encounters rarer while equipped.
	Concealing bool `json:"concealing,omitempty"`

	// Capacity is added to the player's slot count when the item is acquired.
	Capacity int `json:"capacity,omitempty"`

	// Weapon stats
	Strength dice.Range `json:"strength,omitempty"`
	Moves    []string   `json:"moves,omitempty"`
	Ammo     string     `json:"ammo,omitempty"`

	// Hunger restored when eaten
	Hunger dice.Range `json:"hunger,omitempty"`

	// Ingredients needed to craft this item
	Ingredients map[string]int `json:"ingredients,omitempty"`
}

func (i *Item) IsWeapon() bool { return i.Strength.Max() > 0 }
func (i *Item) IsFood() bool   { return i.Hunger.Max() > 0 }

// NewInstance returns a fresh instance carrying the item's full durability.
func (i *Item) NewInstance() ItemInstance {
	return ItemInstance{
		Name:          i.Name,
		Durability:    i.Durability,
		MaxDurability: i.Durability,
		Unbreakable:   i.Unbreakable || i.Durability == 0,
	}
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Durability < 0 {
		el.Add(fmt.Errorf("item durability must not be negative"))
	}
	if i.Rarity < 0 {
		el.Add(fmt.Errorf("item rarity must not be negative"))
	}
	if i.Capacity < 0 {
		el.Add(fmt.Errorf("item capacity must not be negative"))
	}
	if i.IsWeapon() && len(i.Moves) == 0 {
		el.Add(fmt.Errorf("weapon %q needs at least one move", i.Name))
	}
	for name, qty := range i.Ingredients {
		if qty <= 0 {
			el.Add(fmt.Errorf("ingredient %q quantity must be positive", name))
		}
	}
	return el.Err()
}

// ItemInstance is a single carried copy of an Item.
type ItemInstance struct {
	Name          string `json:"name"`
	Durability    int    `json:"durability"`
	MaxDurability int    `json:"max_durability"`
	Unbreakable   bool   `json:"unbreakable,omitempty"`
}

// Wear reduces durability by up to amount and returns how much was taken and
// whether the instance is now broken. Unbreakable instances take nothing.
func (ii *ItemInstance) Wear(amount int) (taken int, broken bool) {
	if ii.Unbreakable || amount <= 0 {
		return 0, false
	}
	taken = min(ii.Durability, amount)
	ii.Durability -= taken
	return taken, ii.Durability <= 0
}
