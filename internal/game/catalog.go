package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/storage"
)

// NothingItem is the rarity-weighted placeholder for an empty random find.
const NothingItem = "Nothing"

// FistsItem is the weapon used when a player attacks without naming one.
const FistsItem = "Fists"

// Catalog indexes the static item and animal tables by display name. It is
// built once at startup and read-only afterwards, so it is shared freely.
type Catalog struct {
	items   map[string]*Item
	animals map[string]*Animal

	itemNames   []string
	animalNames []string
	hostiles    []*Animal
	friendlies  []*Animal
}

// NewCatalog indexes every record in the given stores and checks that all
// cross references (ingredients, ammo, loot) name known items.
func NewCatalog(items storage.Storer[*Item], animals storage.Storer[*Animal]) (*Catalog, error) {
	c := &Catalog{
		items:   map[string]*Item{},
		animals: map[string]*Animal{},
	}

	for id, item := range items.GetAll() {
		if _, ok := c.items[item.Name]; ok {
			return nil, fmt.Errorf("item %s: duplicate item name %q", id, item.Name)
		}
		c.items[item.Name] = item
		c.itemNames = append(c.itemNames, item.Name)
	}
	slices.Sort(c.itemNames)

	for id, animal := range animals.GetAll() {
		if _, ok := c.animals[animal.Name]; ok {
			return nil, fmt.Errorf("animal %s: duplicate animal name %q", id, animal.Name)
		}
		c.animals[animal.Name] = animal
		c.animalNames = append(c.animalNames, animal.Name)
		if animal.Friendly {
			c.friendlies = append(c.friendlies, animal)
		} else {
			c.hostiles = append(c.hostiles, animal)
		}
	}
	slices.Sort(c.animalNames)
	byName := func(a, b *Animal) int { return strings.Compare(a.Name, b.Name) }
	slices.SortFunc(c.hostiles, byName)
	slices.SortFunc(c.friendlies, byName)

	if err := c.resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return c, nil
}

func (c *Catalog) resolve() error {
	el := errors.NewErrorList()
	for _, name := range c.itemNames {
		item := c.items[name]
		for ingredient := range item.Ingredients {
			if _, ok := c.items[ingredient]; !ok {
				el.Add(fmt.Errorf("item %q: unknown ingredient %q", name, ingredient))
			}
		}
		if item.Ammo != "" {
			if _, ok := c.items[item.Ammo]; !ok {
				el.Add(fmt.Errorf("item %q: unknown ammo %q", name, item.Ammo))
			}
		}
	}
	for name, animal := range c.animals {
		for loot := range animal.Loot {
			if _, ok := c.items[loot]; !ok {
				el.Add(fmt.Errorf("animal %q: unknown loot %q", name, loot))
			}
		}
	}
	return el.Err()
}

// Undiscoverable returns the craftable items a player can never come across:
// they have no rarity and no animal drops them. Craft needs the product to be
// discovered first, so these can only be conjured.
func (c *Catalog) Undiscoverable() []string {
	dropped := map[string]bool{}
	for _, name := range c.animalNames {
		for loot := range c.animals[name].Loot {
			dropped[loot] = true
		}
	}

	var names []string
	for _, name := range c.itemNames {
		item := c.items[name]
		if len(item.Ingredients) == 0 || item.Rarity > 0 || dropped[name] {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Item returns the named item definition, or nil.
func (c *Catalog) Item(name string) *Item {
	return c.items[name]
}

// Animal returns the named animal template, or nil.
func (c *Catalog) Animal(name string) *Animal {
	return c.animals[name]
}

// ItemNames returns every item name in sorted order.
func (c *Catalog) ItemNames() []string {
	return slices.Clone(c.itemNames)
}

// AnimalNames returns every animal name in sorted order.
func (c *Catalog) AnimalNames() []string {
	return slices.Clone(c.animalNames)
}

// RandomHostile picks a hostile template uniformly. It returns nil when the
// catalog has none.
func (c *Catalog) RandomHostile(r dice.Roller) *Animal {
	if len(c.hostiles) == 0 {
		return nil
	}
	return dice.Choice(r, c.hostiles)
}

// RandomFriendly picks a friendly template uniformly. It returns nil when the
// catalog has none.
func (c *Catalog) RandomFriendly(r dice.Roller) *Animal {
	if len(c.friendlies) == 0 {
		return nil
	}
	return dice.Choice(r, c.friendlies)
}

// RandomItem picks an item name weighted by rarity. It returns "" when no
// item has a positive rarity.
func (c *Catalog) RandomItem(r dice.Roller) string {
	total := 0
	for _, name := range c.itemNames {
		total += c.items[name].Rarity
	}
	if total == 0 {
		return ""
	}

	roll := dice.Between(r, 1, total)
	tally := 0
	for _, name := range c.itemNames {
		tally += c.items[name].Rarity
		if tally >= roll {
			return name
		}
	}
	return ""
}
