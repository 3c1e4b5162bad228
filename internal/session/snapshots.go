package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/storage"
)

// ErrSnapshotQueueFull is returned when saves are arriving faster than the
// store can write them.
var ErrSnapshotQueueFull = errors.New("snapshot queue full")

const defaultQueueSize = 256

// SnapshotKey returns the store key for a player name. Lowercase letters and
// digits are kept, an uppercase letter becomes "-" and its lowercase form, and
// anything else becomes "--", its hex code point and "-". Distinct names
// always get distinct keys, even on case-insensitive file systems.
func SnapshotKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case 'A' <= r && r <= 'Z':
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
		default:
			fmt.Fprintf(&b, "--%x-", r)
		}
	}
	return b.String()
}

// Snapshots persists player records off the turn path. Saves are queued as
// deep copies and written by Start.
type Snapshots struct {
	store storage.Storer[*game.Player]
	queue chan *game.Player
}

func NewSnapshots(store storage.Storer[*game.Player], queueSize int) *Snapshots {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Snapshots{
		store: store,
		queue: make(chan *game.Player, queueSize),
	}
}

// SavePlayer queues a copy of p for writing. It never blocks.
func (s *Snapshots) SavePlayer(ctx context.Context, p *game.Player) error {
	if SnapshotKey(p.Name) == "" {
		return fmt.Errorf("player %q has no usable snapshot key", p.Name)
	}
	select {
	case s.queue <- p.Clone():
		return nil
	default:
		return ErrSnapshotQueueFull
	}
}

// Load returns the stored snapshot for name, or nil.
func (s *Snapshots) Load(name string) *game.Player {
	key := SnapshotKey(name)
	if key == "" {
		return nil
	}
	p := s.store.Get(key)
	if p == nil {
		return nil
	}
	return p.Clone()
}

// Start writes queued snapshots until ctx is done, then flushes what is left.
func (s *Snapshots) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.drain(context.WithoutCancel(ctx))
			return nil
		case p := <-s.queue:
			s.write(ctx, p)
		}
	}
}

func (s *Snapshots) drain(ctx context.Context) {
	for {
		select {
		case p := <-s.queue:
			s.write(ctx, p)
		default:
			return
		}
	}
}

func (s *Snapshots) write(ctx context.Context, p *game.Player) {
	if err := s.store.Save(SnapshotKey(p.Name), p); err != nil {
		slog.ErrorContext(ctx, "saving player snapshot", "player", p.Name, "error", err)
	}
}
