package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// testRecord stands in for a player snapshot or content entry.
type testRecord struct {
	Name   string `json:"name"`
	Health int    `json:"health"`
}

func (r *testRecord) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeAsset(t *testing.T, path string, version uint, id string, rec *testRecord) {
	t.Helper()
	data, err := json.Marshal(Asset[*testRecord]{Version: version, Identifier: Identifier(id), Spec: rec})
	if err != nil {
		t.Fatalf("marshalling asset: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing asset: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string)
		expCount int
		expErr   string
	}{
		"empty directory": {
			setup: func(*testing.T, string) {},
		},
		"nested assets": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "alex.json"), 1, "alex", &testRecord{Name: "Alex", Health: 80})
				writeAsset(t, filepath.Join(dir, "old", "sam.json"), 1, "sam", &testRecord{Name: "Sam", Health: 10})
			},
			expCount: 2,
		},
		"non json files ignored": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "alex.json"), 1, "alex", &testRecord{Name: "Alex"})
				if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# players"), 0o644); err != nil {
					t.Fatalf("writing: %v", err)
				}
				if err := os.WriteFile(filepath.Join(dir, "alex.json.tmp"), []byte("{"), 0o644); err != nil {
					t.Fatalf("writing: %v", err)
				}
			},
			expCount: 1,
		},
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{invalid"), 0o644); err != nil {
					t.Fatalf("writing: %v", err)
				}
			},
			expErr: "loading bad.json",
		},
		"missing version": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "alex.json"), 0, "alex", &testRecord{Name: "Alex"})
			},
			expErr: "version must be set",
		},
		"invalid spec": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "alex.json"), 1, "alex", &testRecord{})
			},
			expErr: "name is required",
		},
		"duplicate id": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "a", "alex.json"), 1, "alex", &testRecord{Name: "Alex"})
				writeAsset(t, filepath.Join(dir, "b", "alex.json"), 1, "alex", &testRecord{Name: "Alex"})
			},
			expErr: "duplicate key detected: alex",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			store, err := NewFileStore[*testRecord](dir)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "count", len(store.GetAll()), tt.expCount)
		})
	}
}

func TestNewFileStore_MissingDirectory(t *testing.T) {
	_, err := NewFileStore[*testRecord](filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestFileStore_Save(t *testing.T) {
	tests := map[string]struct {
		id     string
		expErr string
	}{
		"valid":      {id: "alex"},
		"hyphenated": {id: "mary-jane"},
		"empty":      {id: "", expErr: "invalid record id"},
		"path":       {id: "../alex", expErr: "invalid record id"},
		"space":      {id: "mary jane", expErr: "invalid record id"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := NewFileStore[*testRecord](dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = store.Save(tt.id, &testRecord{Name: "Alex", Health: 42})
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := os.Stat(filepath.Join(dir, tt.id+".json")); err != nil {
				t.Errorf("expected file on disk: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, tt.id+".json.tmp")); !os.IsNotExist(err) {
				t.Errorf("expected temp file to be gone, got %v", err)
			}
		})
	}
}

func TestFileStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*testRecord](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rec := range []*testRecord{{Name: "Alex", Health: 80}, {Name: "Alex", Health: 55}} {
		if err := store.Save("alex", rec); err != nil {
			t.Fatalf("saving: %v", err)
		}
	}
	if err := store.Save("sam", &testRecord{Name: "Sam", Health: 3}); err != nil {
		t.Fatalf("saving: %v", err)
	}
	testutil.AssertEqual(t, "cached health", store.Get("alex").Health, 55)

	reloaded, err := NewFileStore[*testRecord](dir)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	testutil.AssertEqual(t, "count", len(reloaded.GetAll()), 2)
	testutil.AssertEqual(t, "health", reloaded.Get("alex").Health, 55)
	if reloaded.Get("missing") != nil {
		t.Error("expected nil for a missing record")
	}
}

func TestFileStore_GetAllIsACopy(t *testing.T) {
	store, err := NewFileStore[*testRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save("alex", &testRecord{Name: "Alex"}); err != nil {
		t.Fatalf("saving: %v", err)
	}

	all := store.GetAll()
	delete(all, "alex")
	testutil.AssertEqual(t, "count", len(store.GetAll()), 1)
}
