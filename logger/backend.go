package logger

import (
	"context"
	"unsafe"

	"github.com/ardnew/usblog/semihost"
	"github.com/ardnew/usblog/usb"
)

// Transport is the contract every destination backend implements.
//
// Init prepares the destination and may be called more than once.
// Transmit sends buf as a single best-effort attempt and reports whether
// it went out; a false result is advisory and nothing is retried or
// queued.
type Transport interface {
	Init()
	Transmit(buf []byte) bool
}

// handle is shared by both USB backends. Sharing is sound only while
// usb.Handle has no fields; the assertion below breaks the build otherwise.
var handle usb.Handle

var _ [0]struct{} = [unsafe.Sizeof(handle)]struct{}{}

// Backends carry no state either.
var (
	_ [0]struct{} = [unsafe.Sizeof(Mute{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(Semihost{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(USBInternal{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(USBExternal{})]struct{}{}
)

// Mute discards everything.
type Mute struct{}

// Init does nothing.
func (Mute) Init() {}

// Transmit reports success without sending anything.
func (Mute) Transmit([]byte) bool { return true }

// Semihost writes to the host's standard output.
type Semihost struct{}

// Init does nothing.
func (Semihost) Init() {}

// Transmit writes buf to the host stdout stream. The write primitive is
// trusted, so it always reports success.
func (Semihost) Transmit(buf []byte) bool {
	semihost.Write(semihost.Stdout, buf)
	return true
}

// USBInternal sends through the internal USB port.
//
// Transmit before Init is a precondition violation: the port driver has
// not been brought up and the outcome depends on it.
type USBInternal struct{}

// Init brings up the internal port.
func (USBInternal) Init() {
	handle.Init(usb.PortInternal)
}

// Transmit reports whether the port accepted buf.
func (USBInternal) Transmit(buf []byte) bool {
	return handle.TransmitInternal(buf) == usb.StatusOK
}

// WaitConnect blocks until a host has the internal port open.
func (USBInternal) WaitConnect(ctx context.Context) error {
	return handle.WaitConnect(ctx, usb.PortInternal)
}

// USBExternal sends through the external USB port.
//
// Transmit before Init is a precondition violation: the port driver has
// not been brought up and the outcome depends on it.
type USBExternal struct{}

// Init brings up the external port.
func (USBExternal) Init() {
	handle.Init(usb.PortExternal)
}

// Transmit reports whether the port accepted buf.
func (USBExternal) Transmit(buf []byte) bool {
	return handle.TransmitExternal(buf) == usb.StatusOK
}

// WaitConnect blocks until a host has the external port open.
func (USBExternal) WaitConnect(ctx context.Context) error {
	return handle.WaitConnect(ctx, usb.PortExternal)
}
