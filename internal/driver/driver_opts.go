package driver

import "time"

type DriverOpt func(*Driver)

// WithInterval sets the time between ticks. Non-positive values are ignored.
func WithInterval(interval time.Duration) DriverOpt {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}
