package modem

import (
	"context"
	"strings"
	"sync"
	"time"

	"i4.energy/across/cscctl/at"
)

// TestTransport is a test helper that simulates the device side of the
// modem port. Every command written to it queues the response chunks
// registered for that command; ReadAvailable hands them out one per call.
//
// It also implements Dialer so it can be passed straight to a Config.
// Exported for use in tests.
type TestTransport struct {
	mu        sync.Mutex
	responses map[string][]string
	pending   []string
	writes    []string
	resets    int
	closed    bool
}

// NewTestTransport creates a new test transport for testing.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		responses: make(map[string][]string),
	}
}

// Respond registers the chunks returned after cmd is written. A command
// without registered chunks stays silent.
func (t *TestTransport) Respond(cmd string, chunks ...string) *TestTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[cmd] = chunks
	return t
}

func (t *TestTransport) Dial(ctx context.Context) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrAlreadyClosed
	}
	t.writes = append(t.writes, string(p))
	t.pending = append(t.pending, t.responses[strings.TrimSuffix(string(p), at.LF)]...)
	return len(p), nil
}

func (t *TestTransport) ReadAvailable() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrAlreadyClosed
	}
	if len(t.pending) == 0 {
		return nil, nil
	}
	chunk := t.pending[0]
	t.pending = t.pending[1:]
	return []byte(chunk), nil
}

func (t *TestTransport) ResetBuffers() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = nil
	t.resets++
	return nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Writes returns the raw bytes written so far, one entry per Write.
func (t *TestTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

// Commands returns the written commands without their line terminator.
func (t *TestTransport) Commands() []string {
	writes := t.Writes()
	cmds := make([]string, len(writes))
	for i, w := range writes {
		cmds[i] = strings.TrimSuffix(w, at.LF)
	}
	return cmds
}

func (t *TestTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// TestClock records requested sleeps instead of waiting.
// Exported for use in tests.
type TestClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *TestClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Sleeps returns every recorded sleep in call order.
func (c *TestClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Elapsed is the simulated time spent sleeping.
func (c *TestClock) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}
