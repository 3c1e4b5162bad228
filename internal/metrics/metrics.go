// Package metrics exposes game activity as prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pixil98/go-rpg/internal/game"
)

const namespace = "rpg"

// Collector implements session.Recorder and combat.Observer.
type Collector struct {
	commands        *prometheus.CounterVec
	joins           *prometheus.CounterVec
	joinsRejected   prometheus.Counter
	deaths          *prometheus.CounterVec
	chats           prometheus.Counter
	connections     prometheus.Gauge
	players         prometheus.Gauge
	encounters      *prometheus.CounterVec
	encountersEnded *prometheus.CounterVec
}

// NewCollector registers every metric with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands processed, by command, status and error kind.",
		}, []string{"command", "status", "error"}),
		joins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_total",
			Help:      "Players joined, split by whether a snapshot was resumed.",
		}, []string{"resumed"}),
		joinsRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_rejected_total",
			Help:      "Joins rejected because the name was taken.",
		}),
		deaths: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deaths_total",
			Help:      "Player deaths by reason.",
		}, []string{"reason"}),
		chats: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages relayed.",
		}),
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open connections.",
		}),
		players: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players",
			Help:      "Connections with a living player.",
		}),
		encounters: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encounters_total",
			Help:      "Animals encountered.",
		}, []string{"kind"}),
		encountersEnded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encounters_ended_total",
			Help:      "Encounters that ended, by kind and how.",
		}, []string{"kind", "reason"}),
	}
}

func (c *Collector) CommandProcessed(command string, status game.Status, kind string) {
	if command == "" {
		command = "unknown"
	}
	c.commands.WithLabelValues(command, statusLabel(status), kind).Inc()
}

func (c *Collector) PlayerJoined(resumed bool) {
	c.joins.WithLabelValues(strconv.FormatBool(resumed)).Inc()
}

func (c *Collector) JoinRejected() { c.joinsRejected.Inc() }

func (c *Collector) PlayerDied(reason game.DeathReason) {
	c.deaths.WithLabelValues(string(reason)).Inc()
}

func (c *Collector) ChatRelayed() { c.chats.Inc() }

func (c *Collector) SessionsChanged(connected, joined int) {
	c.connections.Set(float64(connected))
	c.players.Set(float64(joined))
}

func (c *Collector) EncounterSpawned(friendly bool) {
	c.encounters.WithLabelValues(kindLabel(friendly)).Inc()
}

func (c *Collector) EncounterEnded(friendly bool, reason string) {
	c.encountersEnded.WithLabelValues(kindLabel(friendly), reason).Inc()
}

func statusLabel(s game.Status) string {
	switch {
	case s.Has(game.StatusMoved):
		return "moved"
	case s.Has(game.StatusSuccess):
		return "success"
	default:
		return "no_action"
	}
}

func kindLabel(friendly bool) string {
	if friendly {
		return "friendly"
	}
	return "hostile"
}
