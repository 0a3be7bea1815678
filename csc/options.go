package csc

import (
	"log/slog"
	"time"

	"i4.energy/across/cscctl/modem"
)

// Timing holds the fixed delays of the procedure. The mode switch delays
// give the device time to change mode before the next command arrives.
type Timing struct {
	// Settle is the wait between writing a command and reading its response.
	Settle time.Duration
	// Preamble is the wait after the port opens, before step 1.
	Preamble time.Duration
	// ModeSwitch is the wait after steps 1 and 3.
	ModeSwitch time.Duration
	// RebootGap separates the two commands of step 6.
	RebootGap time.Duration
}

// DefaultTiming returns the delays the device firmware expects.
func DefaultTiming() Timing {
	return Timing{
		Settle:     modem.DefaultSettleDelay,
		Preamble:   500 * time.Millisecond,
		ModeSwitch: time.Second,
		RebootGap:  500 * time.Millisecond,
	}
}

// Config holds the Changer configuration.
type Config struct {
	// Clock performs the inter-step waits
	Clock modem.Clock

	// Logger receives step, warning and failure records
	Logger *slog.Logger

	// ProgressCallback is called before every step (optional)
	ProgressCallback ProgressCallback

	Timing Timing
}

func defaultConfig() Config {
	return Config{
		Clock:  modem.RealClock{},
		Logger: slog.Default(),
		Timing: DefaultTiming(),
	}
}

// Option is a functional option for configuring the Changer.
type Option func(*Config)

// WithClock replaces the clock used for the inter-step delays.
func WithClock(clock modem.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback function to track the procedure.
//
// Example:
//
//	changer := csc.New(m,
//	    csc.WithProgressCallback(func(p csc.Progress) {
//	        fmt.Printf("[%d/%d] %s...\n", p.Step, p.Total, p.Description)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithTiming overrides the procedure delays.
func WithTiming(timing Timing) Option {
	return func(c *Config) {
		c.Timing = timing
	}
}
