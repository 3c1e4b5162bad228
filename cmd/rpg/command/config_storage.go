package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/storage"
)

const playerBucket = "players"

type StorageConfig struct {
	Items   AssetConfig[*game.Item]   `json:"items"`
	Animals AssetConfig[*game.Animal] `json:"animals"`
	Players PlayerStoreConfig         `json:"players"`
}

// BuildCatalog loads the item and animal tables.
func (c *StorageConfig) BuildCatalog() (*game.Catalog, error) {
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	animals, err := c.Animals.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating animal store: %w", err)
	}

	catalog, err := game.NewCatalog(items, animals)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	if names := catalog.Undiscoverable(); len(names) > 0 {
		slog.Warn("craftable items can only be conjured", "items", names)
	}
	return catalog, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Items.Validate("items"))
	el.Add(c.Animals.Validate("animals"))
	el.Add(c.Players.validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

type PlayerBackend string

const (
	PlayerBackendMemory PlayerBackend = "memory"
	PlayerBackendFile   PlayerBackend = "file"
	PlayerBackendBolt   PlayerBackend = "bolt"
)

// PlayerStoreConfig selects where player snapshots are kept. An empty
// backend keeps them in memory.
type PlayerStoreConfig struct {
	Backend PlayerBackend `json:"backend"`
	Path    string        `json:"path"`
}

func (c *PlayerStoreConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "", PlayerBackendMemory:
	case PlayerBackendFile, PlayerBackendBolt:
		if c.Path == "" {
			el.Add(fmt.Errorf("players: path is required for the %s backend", c.Backend))
		}
	default:
		el.Add(fmt.Errorf("players: unknown backend %q", c.Backend))
	}

	return el.Err()
}

// BuildStore opens the snapshot store. The closer is nil when there is
// nothing to release.
func (c *PlayerStoreConfig) BuildStore() (storage.Storer[*game.Player], io.Closer, error) {
	switch c.Backend {
	case "", PlayerBackendMemory:
		return storage.NewMemoryStore[*game.Player](nil), nil, nil
	case PlayerBackendFile:
		if err := os.MkdirAll(c.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating player directory %q: %w", c.Path, err)
		}
		s, err := storage.NewFileStore[*game.Player](c.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating player store: %w", err)
		}
		return s, nil, nil
	case PlayerBackendBolt:
		if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating directory for %q: %w", c.Path, err)
		}
		s, err := storage.OpenBoltStore[*game.Player](c.Path, playerBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("opening player store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown player backend %q", c.Backend)
	}
}
