package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pixil98/go-service/service"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/commands"
	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/display"
	"github.com/pixil98/go-rpg/internal/driver"
	"github.com/pixil98/go-rpg/internal/listener"
	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-rpg/internal/metrics"
	"github.com/pixil98/go-rpg/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Static content
	catalog, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	roller := dice.NewSource(seed)
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	resolver := combat.NewResolver(catalog, roller, combat.WithObserver(collector))

	// Player snapshots
	store, closer, err := cfg.Storage.Players.BuildStore()
	if err != nil {
		return nil, err
	}
	snapshots := session.NewSnapshots(store, cfg.Session.queueSize())

	// Commands
	roster := session.NewRoster()
	registry, err := commands.NewHandler(catalog, resolver, roller, roster, snapshots).Registry()
	if err != nil {
		return nil, fmt.Errorf("building command registry: %w", err)
	}
	dispatcher := commands.NewDispatcher(registry, cfg.DevMode)

	// Delivery
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	manager := cfg.Session.BuildManager(dispatcher, resolver, messaging.NewNatsPublisher(nats), snapshots, roster, collector)

	// Create Listeners
	width := cfg.Session.TextWidth
	if width == 0 {
		width = display.DefaultWidth
	}
	cm := listener.NewConnectionManager(manager, nats, width)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm, manager)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = &afterReady{ready: nats.Ready(), worker: w}
	}

	// Setup the autosave driver
	autosave := driver.NewDriver([]driver.Manager{manager}, driver.WithInterval(cfg.autosaveInterval()))

	slog.Info("world loaded", "seed", seed, "dev_mode", cfg.DevMode, "players", cfg.Storage.Players.Backend)

	// Create a worker list
	return service.WorkerList{
		"nats":      nats,
		"sessions":  &sessionWorker{manager: manager, snapshots: snapshots, closer: closer},
		"driver":    autosave,
		"listeners": &listeners,
	}, nil
}

// afterReady holds a listener back until the broker accepts subscriptions.
type afterReady struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (a *afterReady) Start(ctx context.Context) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return nil
	}
	return a.worker.Start(ctx)
}

// sessionWorker keeps the snapshot writer alive until the session manager
// has saved everyone on shutdown, then closes the store.
type sessionWorker struct {
	manager   *session.Manager
	snapshots *session.Snapshots
	closer    io.Closer
}

func (w *sessionWorker) Start(ctx context.Context) error {
	snapCtx, stopSnapshots := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan error, 1)
	go func() { done <- w.snapshots.Start(snapCtx) }()

	err := w.manager.Start(ctx)
	stopSnapshots()
	if snapErr := <-done; snapErr != nil && err == nil {
		err = snapErr
	}

	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil {
			slog.WarnContext(ctx, "closing player store", "error", cerr)
		}
	}
	return err
}
