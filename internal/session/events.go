package session

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
)

// EventType names an outbound event.
type EventType string

const (
	EventJoin             EventType = "join"
	EventUsernameTaken    EventType = "username_taken"
	EventCommandResponse  EventType = "command_response"
	EventDeath            EventType = "death"
	EventChat             EventType = "chat"
	EventChatRejected     EventType = "chat_rejected"
	EventPlayerDisconnect EventType = "player_disconnect"
	EventError            EventType = "error"
)

// Event is the envelope every message to a connection is wrapped in. Data is
// kept raw so receivers can decode it by Type.
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EncodeEvent marshals data inside an envelope of type t.
func EncodeEvent(t EventType, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s event: %w", t, err)
	}
	return json.Marshal(Event{Type: t, Data: raw})
}

// DecodeEvent unmarshals an envelope. The payload is left for the caller.
func DecodeEvent(b []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("unmarshalling event: %w", err)
	}
	if e.Type == "" {
		return nil, fmt.Errorf("event type missing")
	}
	return &e, nil
}

// ErrorData describes a recoverable failure.
type ErrorData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type UsernameTakenData struct {
	Name string `json:"name"`
}

// CommandResponseData is the reply to a single command.
type CommandResponseData struct {
	Status   game.Status      `json:"status"`
	Command  string           `json:"command"`
	Messages []string         `json:"messages"`
	Error    *ErrorData       `json:"error,omitempty"`
	Player   game.PublicState `json:"player"`
}

type DeathData struct {
	Username     string           `json:"username"`
	ConnectionID string           `json:"connection_id"`
	Reason       game.DeathReason `json:"reason"`
}

type ChatData struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type ChatRejectedData struct {
	Error string `json:"error"`
}

type DisconnectData struct {
	Username     string `json:"username"`
	ConnectionID string `json:"connection_id"`
	Reason       string `json:"reason"`
}
