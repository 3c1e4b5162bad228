package storage

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(map[string]*testRecord{
		"one": {Name: "One", Health: 1},
	})

	testutil.AssertEqual(t, "initial count", len(store.GetAll()), 1)

	if err := store.Save("two", &testRecord{Name: "Two", Health: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.Get("two")
	if got == nil {
		t.Fatal("expected record two")
	}
	testutil.AssertEqual(t, "name", got.Name, "Two")

	all := store.GetAll()
	delete(all, "one")
	testutil.AssertEqual(t, "count after copy mutation", len(store.GetAll()), 2)

	if store.Get("missing") != nil {
		t.Error("expected nil for missing record")
	}
}
