// Package hal defines the hardware abstraction USB port drivers transmit
// through.
//
// A [PortHAL] exposes the transmit side of one physical USB port: bus
// attach and detach, packet writes to IN endpoints and connection state.
// It is intentionally smaller than a full device controller interface;
// enumeration, descriptors and the control endpoint are handled by the
// vendor USB stack and never reach the logging layers.
//
// # Implementing a HAL
//
//  1. Create a type that implements all [PortHAL] methods
//  2. Handle controller bring-up in Init and bus attach in Start
//  3. Make Write fail fast with pkg.ErrBusy instead of waiting on the host
//  4. Track whether a host has the port open
//
// A named-pipe HAL for hosted builds and tests is available in
// [github.com/ardnew/usblog/usb/hal/fifo].
package hal
