package messaging

import "fmt"

// ConnSubject is the subject a connection's events are delivered on.
func ConnSubject(connID string) string {
	return fmt.Sprintf("conn-%s", connID)
}

// NatsPublisher publishes events to individual connection subjects.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-connection delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) Publish(connID string, data []byte) error {
	if err := p.server.Publish(ConnSubject(connID), data); err != nil {
		return fmt.Errorf("publishing to %s: %w", connID, err)
	}
	return nil
}
