package courier

import (
	"github.com/rs/zerolog"

	"github.com/courierbus/courier/exec"
)

// BusOption configures a Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the bus.
type busConfig struct {
	// logger receives panic and drop reports. Defaults to a no-op logger.
	logger zerolog.Logger

	// panicHandler is an optional hook called after a callback panics,
	// in addition to the log entry.
	panicHandler exec.PanicHandler
}

func defaultBusConfig() busConfig {
	return busConfig{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for panic and drop reports.
func WithLogger(logger zerolog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithPanicHandler sets a hook invoked when a delivery callback panics.
func WithPanicHandler(h exec.PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	once bool
}

// WithOnce makes the subscription auto-remove after its first delivery.
func WithOnce() SubscribeOption {
	return func(c *subscribeConfig) {
		c.once = true
	}
}
