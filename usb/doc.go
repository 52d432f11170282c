// Package usb provides the peripheral handle the USB log destinations
// transmit through.
//
// [Handle] is a zero-sized dispatch surface over the two full-speed USB
// ports of the board: the internal port wired to the MCU's own USB pins
// and the external port broken out to the header. Because a Handle holds
// no data, any number of copies may be used concurrently and the internal
// and external log destinations can share the type.
//
// The per-port state lives behind the handle, in the drivers bound with
// [Attach]. On TinyGo targets the internal port is bound to the board's
// USB CDC serial at startup. Hosted programs bind drivers themselves,
// usually a [github.com/ardnew/usblog/usb/cdc.ACM] on top of the FIFO HAL:
//
//	acm := cdc.NewACM(fifo.New(busDir, "internal"), cdc.DefaultDataInEP)
//	usb.Attach(usb.PortInternal, acm)
//
//	var h usb.Handle
//	h.Init(usb.PortInternal)
//	if h.TransmitInternal([]byte("hello\r\n")) != usb.StatusOK {
//	    // dropped
//	}
//
// # Status codes
//
// Transmit results are reported as a [Status], mirroring the vendor USB
// device library: only [StatusOK] means the bytes were queued for the host.
package usb
