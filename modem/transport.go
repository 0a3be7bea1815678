package modem

import (
	"context"
	"io"
)

//go:generate go tool mockgen -destination=mock_modem.go -package=modem . Transport,Dialer

// Transport represents an established, bidirectional byte stream to the
// device's modem-emulation port.
//
// A Transport is assumed to be already connected and ready for use. Typical
// implementations are serial ports, TCP connections to bench emulators, or
// in-memory fakes used for testing.
type Transport interface {
	io.WriteCloser

	// ReadAvailable returns the bytes that are already buffered on the
	// connection without waiting for more. It returns an empty slice when
	// nothing is pending.
	ReadAvailable() ([]byte, error)

	// ResetBuffers discards unread input and unflushed output.
	ResetBuffers() error
}

// Dialer opens a Transport to the device.
//
// Dialer abstracts how the connection is created (serial port, TCP emulator
// or test double) and is used during modem construction only.
type Dialer interface {
	// Dial creates and returns a connected Transport. It should respect
	// cancellation of ctx and returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}
