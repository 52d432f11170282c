package logger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDestination is returned when a destination name is not recognized.
var ErrUnknownDestination = errors.New("unknown log destination")

// Destination is a logical target for debug output.
//
// DestinationInternalUSB and DestinationExternalUSB are defined per build:
// with the usbhw build tag they are distinct values bound to the board's
// USB ports; without it they are aliases of DestinationSemihost and
// DestinationNone, so code that names a USB port builds everywhere.
type Destination uint8

// Destinations available on every platform.
const (
	DestinationNone     Destination = iota // Mute logging
	DestinationSemihost                    // Host stdout via semihosting
)

var destinationByName = map[string]Destination{
	"none":     DestinationNone,
	"mute":     DestinationNone,
	"semihost": DestinationSemihost,
	"stdout":   DestinationSemihost,
	"internal": DestinationInternalUSB,
	"usb":      DestinationInternalUSB,
	"external": DestinationExternalUSB,
}

// String returns the destination name. Aliased destinations print as the
// destination they alias.
func (d Destination) String() string {
	switch d {
	case DestinationNone:
		return "none"
	case DestinationSemihost:
		return "semihost"
	default:
		return usbDestinationName(d)
	}
}

// ParseDestination returns the destination named s. Matching is
// case-insensitive.
func ParseDestination(s string) (Destination, error) {
	d, ok := destinationByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DestinationNone, fmt.Errorf("%w: %q", ErrUnknownDestination, s)
	}
	return d, nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Destination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Destination) UnmarshalText(text []byte) error {
	v, err := ParseDestination(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
