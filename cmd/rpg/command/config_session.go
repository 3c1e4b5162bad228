package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/commands"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/session"
)

const defaultSnapshotQueue = 256

type SessionConfig struct {
	MaxInventorySlots int  `json:"max_inventory_slots"`
	Resume            bool `json:"resume"`
	SnapshotQueue     int  `json:"snapshot_queue"`
	TextWidth         int  `json:"text_width"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxInventorySlots < 0 {
		el.Add(fmt.Errorf("max_inventory_slots must not be negative"))
	}
	if c.SnapshotQueue < 0 {
		el.Add(fmt.Errorf("snapshot_queue must not be negative"))
	}
	if c.TextWidth != 0 && c.TextWidth < 20 {
		el.Add(fmt.Errorf("text_width must be at least 20"))
	}

	return el.Err()
}

func (c *SessionConfig) slots() int {
	if c.MaxInventorySlots == 0 {
		return game.DefaultInventorySlots
	}
	return c.MaxInventorySlots
}

func (c *SessionConfig) queueSize() int {
	if c.SnapshotQueue == 0 {
		return defaultSnapshotQueue
	}
	return c.SnapshotQueue
}

func (c *SessionConfig) BuildManager(
	dispatcher *commands.Dispatcher,
	resolver *combat.Resolver,
	pub session.Publisher,
	snapshots *session.Snapshots,
	roster *session.Roster,
	recorder session.Recorder,
) *session.Manager {
	return session.NewManager(dispatcher, resolver, pub, snapshots,
		session.WithInventorySlots(c.slots()),
		session.WithResume(c.Resume),
		session.WithRoster(roster),
		session.WithRecorder(recorder),
	)
}
