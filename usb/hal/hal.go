package hal

import (
	"context"
)

// EndpointDirectionIn marks an IN (device to host) endpoint address.
const EndpointDirectionIn = 0x80

// MaxEndpoints is the highest data endpoint number.
const MaxEndpoints = 15

// EndpointNumber returns the endpoint number (0-15) of an address.
func EndpointNumber(address uint8) uint8 {
	return address & 0x0F
}

// IsIn returns true if address is an IN endpoint (device to host).
func IsIn(address uint8) bool {
	return address&EndpointDirectionIn != 0
}

// PortHAL is the hardware abstraction a USB port driver transmits through.
//
// It covers only the device-to-host half of a port: enumeration and the
// control endpoint belong to the USB stack below it. All methods must be
// safe for concurrent use.
type PortHAL interface {
	// Init prepares the controller. A second call returns
	// pkg.ErrAlreadyRunning and leaves the port untouched.
	Init(ctx context.Context) error

	// Start attaches to the bus. After Start returns, the host can open
	// the port.
	Start() error

	// Stop detaches from the bus and releases the controller.
	Stop() error

	// Write writes one packet to an IN endpoint. It does not wait for a
	// slow host: when the endpoint cannot take the packet it fails with
	// pkg.ErrBusy.
	Write(ctx context.Context, address uint8, data []byte) (int, error)

	// MaxPacketSize returns the largest packet Write accepts.
	MaxPacketSize() int

	// IsConnected returns true while a host has the port open.
	IsConnected() bool

	// WaitConnect blocks until a host opens the port or the context is
	// cancelled.
	WaitConnect(ctx context.Context) error
}
