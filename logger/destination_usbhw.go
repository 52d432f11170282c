//go:build usbhw

package logger

// Destinations of boards with dedicated USB ports.
const (
	DestinationInternalUSB Destination = DestinationSemihost + 1 + iota // Internal USB port
	DestinationExternalUSB                                              // External USB port
)

// HasUSB reports whether this build drives real USB ports.
const HasUSB = true

// Internal is the backend of DestinationInternalUSB.
type Internal = USBInternal

// External is the backend of DestinationExternalUSB.
type External = USBExternal

func usbDestinationName(d Destination) string {
	switch d {
	case DestinationInternalUSB:
		return "internal"
	case DestinationExternalUSB:
		return "external"
	default:
		return "unknown"
	}
}

// Open returns the backend of d. Unknown destinations get Mute.
func Open(d Destination) Transport {
	switch d {
	case DestinationSemihost:
		return Semihost{}
	case DestinationInternalUSB:
		return USBInternal{}
	case DestinationExternalUSB:
		return USBExternal{}
	default:
		return Mute{}
	}
}
