package main

import (
	"fmt"

	"github.com/ardnew/usblog/logger"
	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb"
	"github.com/ardnew/usblog/usb/cdc"
	"github.com/ardnew/usblog/usb/hal/fifo"
)

// hostedPorts owns the FIFO-backed USB port drivers of a hosted build.
type hostedPorts struct {
	ports   []usb.Port
	drivers []*cdc.ACM
}

// attachPorts binds a CDC-ACM driver over a FIFO HAL to both USB ports.
// Builds without the usbhw tag have no USB destinations and attach nothing.
func attachPorts(busDir string) (*hostedPorts, error) {
	hp := &hostedPorts{}
	if !logger.HasUSB {
		return hp, nil
	}
	if busDir == "" {
		return nil, fmt.Errorf("bus dir is required for USB ports: %w", pkg.ErrInvalidParameter)
	}

	for _, port := range []usb.Port{usb.PortInternal, usb.PortExternal} {
		acm := cdc.NewACM(fifo.New(busDir, port.String()), cdc.DefaultDataInEP)
		if err := usb.Attach(port, acm); err != nil {
			hp.Close()
			return nil, fmt.Errorf("attach %s port: %w", port, err)
		}
		hp.ports = append(hp.ports, port)
		hp.drivers = append(hp.drivers, acm)
	}
	return hp, nil
}

// Close detaches and stops every attached port.
func (hp *hostedPorts) Close() {
	for i, port := range hp.ports {
		usb.Detach(port)
		if err := hp.drivers[i].Close(); err != nil {
			pkg.LogWarn(pkg.ComponentTick, "could not close port", "port", port, "error", err)
		}
	}
	hp.ports = nil
	hp.drivers = nil
}
