package modem

import (
	"context"
	"errors"
	"net"
	"time"
)

// TCPDialer connects to a serial-over-TCP bridge or a device emulator.
type TCPDialer struct {
	Address string
	// Timeout bounds the connect; it defaults to two seconds.
	Timeout time.Duration
}

var _ Dialer = TCPDialer{}

func (d TCPDialer) Dial(ctx context.Context) (Transport, error) {
	if d.Address == "" {
		return nil, errors.New("modem: tcp address is required")
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", d.Address)
	if err != nil {
		return nil, err
	}
	return &tcpTransport{conn: conn}, nil
}

type tcpTransport struct {
	conn net.Conn
}

func (t *tcpTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *tcpTransport) ReadAvailable() ([]byte, error) {
	var out []byte
	buf := make([]byte, readChunk)
	for {
		t.conn.SetReadDeadline(time.Now().Add(drainTimeout))
		n, err := t.conn.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return out, nil
			}
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

// ResetBuffers drains whatever the peer already sent. TCP has no output
// buffer to discard from user space.
func (t *tcpTransport) ResetBuffers() error {
	_, err := t.ReadAvailable()
	return err
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
