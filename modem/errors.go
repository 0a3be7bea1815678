package modem

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the device.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a Modem
	// that has no open transport.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Modem that has
	// already been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrPortUnavailable is returned by New when the connection cannot be
	// opened or configured. No command has been sent when it is returned.
	ErrPortUnavailable = errors.New("port unavailable")

	// ErrExchange marks a reset, write or read failure in the middle of a
	// command exchange. Send never returns it; it only appears in log records
	// and the exchange yields an empty response.
	ErrExchange = errors.New("exchange I/O error")
)
