//go:build tinygo

package usb

import (
	"context"
	"machine"
)

func init() {
	drivers[PortInternal] = serialDriver{}
}

// serialDriver sends through the USB CDC serial TinyGo enumerates on the
// on-chip port. The external port has no TinyGo driver and stays unbound.
type serialDriver struct{}

func (serialDriver) Init(context.Context) error {
	return machine.Serial.Configure(machine.UARTConfig{})
}

func (serialDriver) Transmit(buf []byte) Status {
	n, err := machine.Serial.Write(buf)
	if err != nil {
		return StatusFail
	}
	if n < len(buf) {
		return StatusBusy
	}
	return StatusOK
}
