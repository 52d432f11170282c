package pkg

import "errors"

// Driver layer errors.
var (
	// ErrNoDevice indicates no driver is bound to the requested port.
	ErrNoDevice = errors.New("device not present")

	// ErrNotConfigured indicates the port has not been initialized.
	ErrNotConfigured = errors.New("device not configured")

	// ErrNotConnected indicates no host has opened the port.
	ErrNotConnected = errors.New("host not connected")

	// ErrInvalidEndpoint indicates an invalid endpoint address.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrNoMemory indicates insufficient memory.
	ErrNoMemory = errors.New("insufficient memory")

	// ErrBusy indicates the endpoint cannot accept data right now.
	ErrBusy = errors.New("resource busy")

	// ErrTimeout indicates a transfer timeout.
	ErrTimeout = errors.New("transfer timeout")

	// ErrCancelled indicates a cancelled transfer.
	ErrCancelled = errors.New("transfer cancelled")

	// ErrProtocol indicates a malformed message on the wire.
	ErrProtocol = errors.New("protocol error")

	// ErrAlreadyRunning indicates the HAL is already initialized.
	ErrAlreadyRunning = errors.New("already running")
)
