package listener

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-rpg/internal/session"
)

// fakeBus hands published events straight to the subscriber.
type fakeBus struct {
	mu       sync.Mutex
	handlers map[string]func([]byte)
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: map[string]func([]byte){}}
}

func (b *fakeBus) Subscribe(subject string, handler func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[subject] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, subject)
	}, nil
}

func (b *fakeBus) publish(connID string, data []byte) {
	b.mu.Lock()
	h := b.handlers[messaging.ConnSubject(connID)]
	b.mu.Unlock()
	if h != nil {
		h(data)
	}
}

func (b *fakeBus) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

type fakeSessions struct {
	t   *testing.T
	bus *fakeBus

	mu          sync.Mutex
	connected   []string
	disconnects []string
	names       map[string]string
}

func newFakeSessions(t *testing.T, bus *fakeBus) *fakeSessions {
	return &fakeSessions{t: t, bus: bus, names: map[string]string{}}
}

func (s *fakeSessions) send(connID string, et session.EventType, data any) {
	b, err := session.EncodeEvent(et, data)
	if err != nil {
		s.t.Errorf("encoding: %v", err)
		return
	}
	s.bus.publish(connID, b)
}

func (s *fakeSessions) Connect(_ context.Context, connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = append(s.connected, connID)
	return nil
}

func (s *fakeSessions) Disconnect(_ context.Context, connID, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnects = append(s.disconnects, reason)
}

func (s *fakeSessions) Join(_ context.Context, connID, name string) error {
	s.mu.Lock()
	for _, n := range s.names {
		if n == name {
			s.mu.Unlock()
			s.send(connID, session.EventUsernameTaken, session.UsernameTakenData{Name: name})
			return game.ErrUsernameTaken
		}
	}
	s.names[connID] = name
	s.mu.Unlock()

	s.send(connID, session.EventJoin, game.PublicState{ConnID: connID, Name: name, Health: 100, Hunger: 100})
	return nil
}

func (s *fakeSessions) Command(_ context.Context, connID, text string) (bool, error) {
	if text == "quit" {
		return true, nil
	}
	s.send(connID, session.EventCommandResponse, session.CommandResponseData{
		Status:   game.StatusSuccess,
		Command:  text,
		Messages: []string{fmt.Sprintf("You %s.", text)},
	})
	return false, nil
}

func (s *fakeSessions) Chat(_ context.Context, connID, text string) error {
	s.mu.Lock()
	name := s.names[connID]
	s.mu.Unlock()
	s.send(connID, session.EventChat, session.ChatData{Username: name, Message: text})
	return nil
}

func (s *fakeSessions) Players() []game.PublicState {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []game.PublicState
	for id, name := range s.names {
		out = append(out, game.PublicState{ConnID: id, Name: name, Health: 100, Hunger: 100})
	}
	return out
}

func (s *fakeSessions) reasons() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.disconnects...)
}
