package storage

import (
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBoltStore_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.db")

	store, err := OpenBoltStore[*testRecord](path, "players")
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}

	err = store.Save("alex", &testRecord{Name: "Alex", Health: 3})
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	err = store.Save("sam", &testRecord{Name: "Sam", Health: 4})
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error closing: %v", err)
	}

	reopened, err := OpenBoltStore[*testRecord](path, "players")
	if err != nil {
		t.Fatalf("unexpected error reopening store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	testutil.AssertEqual(t, "record count", len(reopened.GetAll()), 2)

	got := reopened.Get("alex")
	if got == nil {
		t.Fatal("expected alex to be loaded")
	}
	testutil.AssertEqual(t, "name", got.Name, "Alex")
	testutil.AssertEqual(t, "health", got.Health, 3)
}

func TestBoltStore_Save_InvalidId(t *testing.T) {
	store, err := OpenBoltStore[*testRecord](filepath.Join(t.TempDir(), "p.db"), "players")
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer func() { _ = store.Close() }()

	err = store.Save("not valid", &testRecord{})
	testutil.AssertErrorContains(t, err, "invalid record id")
}
