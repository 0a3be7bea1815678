package modem

import (
	"log/slog"
	"time"
)

const (
	// DefaultSettleDelay is the usual wait between writing a command and
	// the first read. Callers pass it to Send.
	DefaultSettleDelay  = 500 * time.Millisecond
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMaxPolls     = 20
)

type Config struct {
	Dialer Dialer
	// PollInterval is the wait between two empty reads.
	PollInterval time.Duration
	// MaxPolls caps the read attempts of one exchange.
	MaxPolls int
	Clock    Clock
	Logger   *slog.Logger
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPolls == 0 {
		c.MaxPolls = DefaultMaxPolls
	}
	if c.Clock == nil {
		c.Clock = RealClock{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithPollInterval(d time.Duration) *ConfigBuilder {
	b.config.PollInterval = d
	return b
}

func (b *ConfigBuilder) WithMaxPolls(n int) *ConfigBuilder {
	b.config.MaxPolls = n
	return b
}

func (b *ConfigBuilder) WithClock(c Clock) *ConfigBuilder {
	b.config.Clock = c
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build validates the collected settings and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	config.setDefaults()
	return config, nil
}
