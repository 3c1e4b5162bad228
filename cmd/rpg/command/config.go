package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const defaultAutosaveInterval = time.Minute

type Config struct {
	DevMode          bool             `json:"dev_mode"`
	Seed             int64            `json:"seed"`
	AutosaveInterval string           `json:"autosave_interval"`
	Listeners        []ListenerConfig `json:"listeners"`
	Storage          StorageConfig    `json:"storage"`
	Nats             NatsConfig       `json:"nats"`
	Session          SessionConfig    `json:"session"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.AutosaveInterval != "" {
		d, err := time.ParseDuration(c.AutosaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("autosave_interval must be at least 1 second"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Session.validate())

	return el.Err()
}

func (c *Config) autosaveInterval() time.Duration {
	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil || d <= 0 {
		return defaultAutosaveInterval
	}
	return d
}
