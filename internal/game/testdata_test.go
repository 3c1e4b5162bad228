package game

import (
	"testing"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/storage"
)

func testItems() map[string]*Item {
	return map[string]*Item{
		"nothing":  {Name: NothingItem, Rarity: 5, Hidden: true},
		"fists":    {Name: FistsItem, Hidden: true, Strength: dice.Range{1, 3}, Moves: []string{"punch"}},
		"rations":  {Name: "Rations", Rarity: 3, Hunger: dice.Range{10, 20}},
		"wood":     {Name: "Wood", Rarity: 2},
		"stone":    {Name: "Stone", Rarity: 0},
		"sword":    {Name: "Sword", Durability: 20, Strength: dice.Range{5, 10}, Moves: []string{"slash"}, Ingredients: map[string]int{"Wood": 1, "Stone": 2}},
		"shield":   {Name: "Wooden Shield", Durability: 10, Equippable: true},
		"backpack": {Name: "Backpack", Hidden: true, Capacity: 30},
	}
}

func testAnimals() map[string]*Animal {
	return map[string]*Animal{
		"wolf":  {Name: "Wolf", Health: 20, Strength: dice.Range{2, 6}, Moves: []string{"bite"}},
		"bear":  {Name: "Bear", Health: 40, Strength: dice.Range{5, 12}, Moves: []string{"maul", "swipe"}},
		"sheep": {Name: "Sheep", Health: 10, Friendly: true, Loot: map[string]dice.Range{"Wood": {1, 2}}},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(storage.NewMemoryStore(testItems()), storage.NewMemoryStore(testAnimals()))
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return c
}

func inventoryOf(names ...string) Inventory {
	inv := Inventory{}
	for _, n := range names {
		inv = append(inv, ItemInstance{Name: n, Unbreakable: true})
	}
	return inv
}
