package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/session"
	"github.com/pixil98/go-testutil"
)

var (
	_ session.Recorder = (*Collector)(nil)
	_ combat.Observer  = (*Collector)(nil)
)

func TestCollector_CommandProcessed(t *testing.T) {
	tests := map[string]struct {
		command   string
		status    game.Status
		kind      string
		expLabels []string
	}{
		"move": {
			command:   "walk",
			status:    game.StatusSuccess | game.StatusMoved,
			expLabels: []string{"walk", "moved", ""},
		},
		"success": {
			command:   "eat",
			status:    game.StatusSuccess,
			expLabels: []string{"eat", "success", ""},
		},
		"failure": {
			command:   "craft",
			status:    game.StatusNoAction,
			kind:      "InsufficientItems",
			expLabels: []string{"craft", "no_action", "InsufficientItems"},
		},
		"unknown": {
			status:    game.StatusNoAction,
			kind:      "UnknownCommand",
			expLabels: []string{"unknown", "no_action", "UnknownCommand"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewCollector(prometheus.NewRegistry())
			c.CommandProcessed(tt.command, tt.status, tt.kind)
			got := promtest.ToFloat64(c.commands.WithLabelValues(tt.expLabels...))
			testutil.AssertEqual(t, "count", got, float64(1))
		})
	}
}

func TestCollector_Sessions(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.PlayerJoined(false)
	c.PlayerJoined(true)
	c.PlayerJoined(true)
	c.JoinRejected()
	c.PlayerDied(game.DeathStarvation)
	c.ChatRelayed()
	c.SessionsChanged(3, 2)

	testutil.AssertEqual(t, "fresh joins", promtest.ToFloat64(c.joins.WithLabelValues("false")), float64(1))
	testutil.AssertEqual(t, "resumed joins", promtest.ToFloat64(c.joins.WithLabelValues("true")), float64(2))
	testutil.AssertEqual(t, "rejected", promtest.ToFloat64(c.joinsRejected), float64(1))
	testutil.AssertEqual(t, "starved", promtest.ToFloat64(c.deaths.WithLabelValues("starvation")), float64(1))
	testutil.AssertEqual(t, "chats", promtest.ToFloat64(c.chats), float64(1))
	testutil.AssertEqual(t, "connections", promtest.ToFloat64(c.connections), float64(3))
	testutil.AssertEqual(t, "players", promtest.ToFloat64(c.players), float64(2))
}

func TestCollector_Encounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.EncounterSpawned(false)
	c.EncounterSpawned(true)
	c.EncounterEnded(true, "wandered")

	testutil.AssertEqual(t, "hostile", promtest.ToFloat64(c.encounters.WithLabelValues("hostile")), float64(1))
	testutil.AssertEqual(t, "friendly", promtest.ToFloat64(c.encounters.WithLabelValues("friendly")), float64(1))
	testutil.AssertEqual(t, "wandered", promtest.ToFloat64(c.encountersEnded.WithLabelValues("friendly", "wandered")), float64(1))
}
