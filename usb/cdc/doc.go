// Package cdc implements the transmit side of a USB CDC-ACM serial port
// as a driver for package usb.
//
// The USB device stack enumerates the port and handles its control
// requests; this package only moves log bytes out of the data interface's
// bulk IN endpoint through a [github.com/ardnew/usblog/usb/hal.PortHAL].
//
// # Transfers
//
// Each Write is one bulk transfer split into max-packet-size packets. A
// transfer whose length is a multiple of the packet size is terminated by
// a zero-length packet so the host's read completes. Writes are
// serialized; packets of concurrent writes never interleave.
//
// # Usage
//
//	port := fifo.New(busDir, "external")
//	acm := cdc.NewACM(port, cdc.DefaultDataInEP)
//	usb.Attach(usb.PortExternal, acm)
//
// Transmit maps HAL errors onto usb.Status: pkg.ErrBusy and pkg.ErrTimeout
// become usb.StatusBusy, buffer exhaustion becomes usb.StatusMem, anything
// else usb.StatusFail.
package cdc
