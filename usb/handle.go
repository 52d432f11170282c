package usb

import (
	"context"
	"sync"

	"github.com/ardnew/usblog/pkg"
)

// Driver moves bytes out of one physical port.
//
// Implementations must be safe for concurrent use; the handle performs no
// locking around Transmit.
type Driver interface {
	// Init brings the port up. It is called on every Handle.Init and must
	// tolerate repeated calls.
	Init(ctx context.Context) error

	// Transmit queues buf for the host and reports the outcome.
	Transmit(buf []byte) Status
}

// ConnectWaiter is implemented by drivers that know when a host has opened
// the port.
type ConnectWaiter interface {
	WaitConnect(ctx context.Context) error
}

var (
	driverMutex sync.RWMutex
	drivers     [portCount]Driver
)

// Attach binds drv to port, replacing any driver already bound.
func Attach(port Port, drv Driver) error {
	if !port.Valid() || drv == nil {
		return pkg.ErrInvalidParameter
	}
	driverMutex.Lock()
	drivers[port] = drv
	driverMutex.Unlock()

	pkg.LogDebug(pkg.ComponentUSB, "driver attached", "port", port)
	return nil
}

// Detach unbinds the driver from port and returns it, or nil if none.
func Detach(port Port) Driver {
	if !port.Valid() {
		return nil
	}
	driverMutex.Lock()
	drv := drivers[port]
	drivers[port] = nil
	driverMutex.Unlock()

	pkg.LogDebug(pkg.ComponentUSB, "driver detached", "port", port)
	return drv
}

// Bound reports whether a driver is attached to port.
func Bound(port Port) bool {
	return driver(port) != nil
}

func driver(port Port) Driver {
	if !port.Valid() {
		return nil
	}
	driverMutex.RLock()
	defer driverMutex.RUnlock()
	return drivers[port]
}

// Handle is the stateless dispatch surface for the board's USB ports.
// It must stay zero-sized: the log destinations alias it across ports.
type Handle struct{}

// Init brings up port. It is safe to call more than once.
func (Handle) Init(port Port) Status {
	drv := driver(port)
	if drv == nil {
		pkg.LogWarn(pkg.ComponentUSB, "no driver bound", "port", port)
		return StatusFail
	}
	if err := drv.Init(context.Background()); err != nil {
		pkg.LogWarn(pkg.ComponentUSB, "port init failed", "port", port, "error", err)
		return StatusOf(err)
	}
	pkg.LogDebug(pkg.ComponentUSB, "port initialized", "port", port)
	return StatusOK
}

// TransmitInternal sends buf out of the internal port.
func (h Handle) TransmitInternal(buf []byte) Status {
	return h.transmit(PortInternal, buf)
}

// TransmitExternal sends buf out of the external port.
func (h Handle) TransmitExternal(buf []byte) Status {
	return h.transmit(PortExternal, buf)
}

func (Handle) transmit(port Port, buf []byte) Status {
	drv := driver(port)
	if drv == nil {
		return StatusFail
	}
	return drv.Transmit(buf)
}

// WaitConnect blocks until a host has opened port. Ports whose driver
// cannot tell return immediately.
func (Handle) WaitConnect(ctx context.Context, port Port) error {
	drv := driver(port)
	if drv == nil {
		return pkg.ErrNoDevice
	}
	if w, ok := drv.(ConnectWaiter); ok {
		return w.WaitConnect(ctx)
	}
	return nil
}
