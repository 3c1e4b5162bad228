// Package driver runs background work on a fixed interval. Turns are driven
// by player commands, so nothing here advances the game itself.
package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultInterval = 30 * time.Second
)

// Manager is anything with periodic upkeep, such as snapshotting players.
type Manager interface {
	Tick(context.Context) error
}

type Driver struct {
	interval time.Duration
	managers []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		interval: DefaultInterval,
		managers: managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks every manager once per interval until ctx is done. A failing
// manager is logged and retried on the next tick.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				slog.WarnContext(ctx, "driver tick", "error", err)
			}
		}
	}
}

// Tick runs every manager, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
