package modem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"i4.energy/across/cscctl/at"
)

// Modem drives the modem-emulation port of a Samsung device. It owns the
// transport exclusively and performs one command/response exchange at a time.
//
// A Modem is not safe for concurrent use; the CSC procedure is strictly
// sequential.
type Modem struct {
	// transport provides the physical connection to the device
	transport Transport
	// config contains the exchange timing, clock and logger
	config Config
	// closed indicates if the modem has been shut down
	closed bool
}

// New creates a new Modem with the given configuration by dialing its
// transport. The caller owns the returned Modem and must Close it on every
// exit path.
//
// Dial failures are reported wrapped in ErrPortUnavailable.
func New(ctx context.Context, config Config) (*Modem, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPortUnavailable, err)
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	return &Modem{
		transport: transport,
		config:    config,
	}, nil
}

// Send performs one exchange: it discards stale buffered bytes, writes cmd
// followed by a line feed, waits settle and then polls for the response.
//
// Polling stops at the first empty read once some data has arrived, or
// after MaxPolls attempts. Send never fails: I/O errors are logged and
// yield an empty response, so callers must treat "" as inconclusive.
// Invalid UTF-8 in the response is dropped.
func (m *Modem) Send(ctx context.Context, cmd string, settle time.Duration) string {
	logger := m.config.Logger.With("command", cmd)

	if m.closed {
		logger.Error("Exchange skipped", "error", ErrAlreadyClosed)
		return ""
	}
	if m.transport == nil {
		logger.Error("Exchange skipped", "error", ErrNotInitialized)
		return ""
	}

	if err := m.transport.ResetBuffers(); err != nil {
		logger.Error("Exchange failed", "error", fmt.Errorf("%w: reset buffers: %w", ErrExchange, err))
		return ""
	}

	logger.Debug("TX")
	if _, err := m.transport.Write([]byte(cmd + at.LF)); err != nil {
		logger.Error("Exchange failed", "error", fmt.Errorf("%w: write command %q: %w", ErrExchange, cmd, err))
		return ""
	}

	if err := m.config.Clock.Sleep(ctx, settle); err != nil {
		logger.Warn("Exchange cancelled", "error", err)
		return ""
	}

	buf, err := m.collect(ctx)
	resp := strings.ToValidUTF8(string(buf), "")
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Exchange cancelled", "error", err, "response", resp)
		return resp
	default:
		logger.Error("Exchange failed", "error", fmt.Errorf("%w: read response: %w", ErrExchange, err))
		return ""
	}

	if resp == "" {
		logger.Debug("RX", "response", resp, "silent", true)
		return resp
	}
	result, _ := at.FinalResult(resp)
	logger.Debug("RX", "response", strings.TrimSpace(resp), "result", result)
	return resp
}

// collect runs the poll loop of one exchange.
func (m *Modem) collect(ctx context.Context) ([]byte, error) {
	var buf []byte
	for attempt := 0; attempt < m.config.MaxPolls; attempt++ {
		chunk, err := m.transport.ReadAvailable()
		if err != nil {
			return buf, err
		}

		if len(chunk) > 0 {
			buf = append(buf, chunk...)
		} else if len(buf) > 0 {
			// Quiet after at least one chunk: end of response
			break
		}

		if err := m.config.Clock.Sleep(ctx, m.config.PollInterval); err != nil {
			return buf, err
		}
	}
	return buf, nil
}

// Close releases the transport. After calling Close(), the modem cannot be
// reused.
func (m *Modem) Close() error {
	if m.closed {
		return ErrAlreadyClosed
	}

	m.closed = true

	if m.transport != nil {
		return m.transport.Close()
	}

	return nil
}
