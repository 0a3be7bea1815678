package modem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 5 * time.Second

	// drainTimeout bounds a single ReadAvailable call on a serial port.
	drainTimeout = 10 * time.Millisecond
	readChunk    = 1024
	tcpScheme    = "tcp://"
)

// SerialDialer opens the device's modem port using go.bug.st/serial.
type SerialDialer struct {
	PortName string
	// Mode defaults to 115200 baud, 8 data bits, no parity, one stop bit.
	Mode *serial.Mode
	// ReadTimeout is the port level read timeout. It is a safety net only;
	// exchanges are bounded by the poll loop.
	ReadTimeout time.Duration
}

var _ Dialer = SerialDialer{}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if d.PortName == "" {
		return nil, errors.New("modem: serial port name is required")
	}
	if ctx == nil {
		return nil, errors.New("modem: context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: DefaultBaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}
	readTimeout := d.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.PortName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", d.PortName, err)
	}

	return &serialTransport{port: port, readTimeout: readTimeout}, nil
}

// serialPort is the part of serial.Port used by serialTransport.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ResetInputBuffer() error
	ResetOutputBuffer() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

type serialTransport struct {
	port        serialPort
	readTimeout time.Duration
}

func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// ReadAvailable shortens the port timeout so that a read returns as soon as
// the driver buffer is empty, then restores the configured timeout.
func (t *serialTransport) ReadAvailable() ([]byte, error) {
	if err := t.port.SetReadTimeout(drainTimeout); err != nil {
		return nil, err
	}
	defer t.port.SetReadTimeout(t.readTimeout)

	var out []byte
	buf := make([]byte, readChunk)
	for {
		n, err := t.port.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

func (t *serialTransport) ResetBuffers() error {
	if err := t.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("reset input buffer: %w", err)
	}
	if err := t.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("reset output buffer: %w", err)
	}
	return nil
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}

// NewDialer returns a TCPDialer for "tcp://host:port" names and a
// SerialDialer for everything else ("COM11", "/dev/ttyACM0", ...).
func NewDialer(portName string, baudRate int, readTimeout time.Duration) Dialer {
	if addr, ok := strings.CutPrefix(portName, tcpScheme); ok {
		return TCPDialer{Address: addr}
	}
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	return SerialDialer{
		PortName: portName,
		Mode: &serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		ReadTimeout: readTimeout,
	}
}
