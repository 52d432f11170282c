package usb

import (
	"errors"

	"github.com/ardnew/usblog/pkg"
)

// Status is the result code of a port operation.
type Status uint8

// Status values.
const (
	StatusOK   Status = iota // Data accepted
	StatusBusy               // Previous transfer still in flight
	StatusMem                // Out of buffer space
	StatusFail               // Any other failure
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBusy:
		return "busy"
	case StatusMem:
		return "mem"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// StatusOf maps a driver error to the status reported to the caller.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, pkg.ErrBusy), errors.Is(err, pkg.ErrTimeout):
		return StatusBusy
	case errors.Is(err, pkg.ErrNoMemory), errors.Is(err, pkg.ErrBufferTooSmall):
		return StatusMem
	default:
		return StatusFail
	}
}
