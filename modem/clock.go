package modem

import (
	"context"
	"time"
)

// Clock abstracts waiting so that exchange timing can be simulated in tests.
type Clock interface {
	// Sleep blocks for d or until ctx is done, in which case it returns
	// the context error.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock waits on wall-clock timers.
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
