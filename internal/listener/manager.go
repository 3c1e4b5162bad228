package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-rpg/internal/player"
)

const messageBuffer = 64

// Sessions is the session manager as seen by the listeners.
type Sessions interface {
	player.Session
	Connect(ctx context.Context, connID string) error
	Disconnect(ctx context.Context, connID, reason string)
}

// Subscriber delivers the events published for a connection.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

type ConnectionManager struct {
	sessions Sessions
	sub      Subscriber
	width    int
}

func NewConnectionManager(sessions Sessions, sub Subscriber, width int) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
		sub:      sub,
		width:    width,
	}
}

// open gives the connection an id and subscribes it before registering it
// with the session manager, so no broadcast is missed. The returned func
// undoes both.
func (m *ConnectionManager) open(ctx context.Context, handler func([]byte)) (string, func(string), error) {
	connID := uuid.NewString()
	unsub, err := m.sub.Subscribe(messaging.ConnSubject(connID), handler)
	if err != nil {
		return "", nil, err
	}
	if err := m.sessions.Connect(ctx, connID); err != nil {
		unsub()
		return "", nil, err
	}
	return connID, func(reason string) {
		m.sessions.Disconnect(ctx, connID, reason)
		unsub()
	}, nil
}

// AcceptConnection runs a line based player over conn until it ends.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	msgs := make(chan []byte, messageBuffer)
	connID, closeConn, err := m.open(ctx, func(b []byte) {
		select {
		case msgs <- b:
		case <-ctx.Done():
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "opening connection", "error", err)
		return
	}

	reason := "disconnected"
	defer func() { closeConn(reason) }()

	p, err := player.New(connID, conn, m.sessions, msgs, m.width)
	if err != nil {
		slog.ErrorContext(ctx, "creating player", "conn", connID, "error", err)
		reason = "server error"
		return
	}
	if err := p.Play(ctx); err != nil {
		slog.WarnContext(ctx, "player session", "conn", connID, "error", err)
		reason = "connection lost"
	}
}
