package cdc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb"
	"github.com/ardnew/usblog/usb/hal"
)

// DefaultDataInEP is the bulk IN endpoint address of the data interface.
const DefaultDataInEP = 0x82

// ACM implements the transmit side of a CDC-ACM (Abstract Control Model)
// serial port as a usb.Driver.
type ACM struct {
	hal    hal.PortHAL
	dataIn uint8

	// mutex serializes transfers so packets of two writes never interleave.
	mutex       sync.Mutex
	initialized bool
}

// NewACM creates a CDC-ACM driver that sends through bulk IN endpoint
// dataInEP of h.
func NewACM(h hal.PortHAL, dataInEP uint8) *ACM {
	return &ACM{
		hal:    h,
		dataIn: dataInEP,
	}
}

// Init brings up the HAL and attaches the port to the bus.
// Calling Init on an initialized driver does nothing.
func (a *ACM) Init(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.initialized {
		return nil
	}

	if err := a.hal.Init(ctx); err != nil && !errors.Is(err, pkg.ErrAlreadyRunning) {
		return fmt.Errorf("init port HAL: %w", err)
	}
	if err := a.hal.Start(); err != nil {
		return fmt.Errorf("start port HAL: %w", err)
	}

	a.initialized = true
	pkg.LogDebug(pkg.ComponentCDC, "CDC-ACM port ready",
		"dataIn", a.dataIn,
		"maxPacket", a.hal.MaxPacketSize())
	return nil
}

// Write sends data to the host as one bulk transfer, split into
// max-packet-size packets. A transfer that ends on a packet boundary is
// terminated with a zero-length packet. It returns the number of payload
// bytes the HAL accepted before the first error.
func (a *ACM) Write(ctx context.Context, data []byte) (int, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.initialized {
		return 0, pkg.ErrNotConfigured
	}
	if len(data) == 0 {
		return 0, nil
	}

	mps := a.hal.MaxPacketSize()
	total := 0
	for total < len(data) {
		end := total + mps
		if end > len(data) {
			end = len(data)
		}
		n, err := a.hal.Write(ctx, a.dataIn, data[total:end])
		total += n
		if err != nil {
			return total, err
		}
	}

	if len(data)%mps == 0 {
		if _, err := a.hal.Write(ctx, a.dataIn, nil); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Transmit sends buf and reports the outcome as a usb.Status.
func (a *ACM) Transmit(buf []byte) usb.Status {
	_, err := a.Write(context.Background(), buf)
	status := usb.StatusOf(err)
	if err != nil {
		pkg.LogDebug(pkg.ComponentCDC, "transmit failed",
			"bytes", len(buf),
			"status", status,
			"error", err)
	}
	return status
}

// WaitConnect blocks until a host has the port open.
func (a *ACM) WaitConnect(ctx context.Context) error {
	return a.hal.WaitConnect(ctx)
}

// Close detaches the port from the bus.
func (a *ACM) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.initialized = false
	return a.hal.Stop()
}

// Compile-time interface checks
var (
	_ usb.Driver        = (*ACM)(nil)
	_ usb.ConnectWaiter = (*ACM)(nil)
)
