package modem_test

import (
	"testing"
	"time"

	"i4.energy/across/cscctl/modem"
)

func TestConfig(t *testing.T) {
	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		_, err := modem.NewConfigBuilder().Build()

		if err != modem.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("Defaults match the exchange timing contract", func(t *testing.T) {
		config, err := modem.NewConfigBuilder().
			WithDialer(modem.NewTestTransport()).
			Build()
		if err != nil {
			t.Fatalf("unexpected error from Build(): %v", err)
		}

		if config.PollInterval != 100*time.Millisecond {
			t.Errorf("unexpected poll interval: %v", config.PollInterval)
		}
		if config.MaxPolls != 20 {
			t.Errorf("unexpected max polls: %d", config.MaxPolls)
		}
		if config.Clock == nil || config.Logger == nil {
			t.Error("expected clock and logger defaults")
		}
	})

	t.Run("Explicit values are kept", func(t *testing.T) {
		config, err := modem.NewConfigBuilder().
			WithDialer(modem.NewTestTransport()).
			WithPollInterval(time.Second).
			WithMaxPolls(5).
			Build()
		if err != nil {
			t.Fatalf("unexpected error from Build(): %v", err)
		}
		if config.PollInterval != time.Second || config.MaxPolls != 5 {
			t.Errorf("unexpected config: %+v", config)
		}
	})
}
