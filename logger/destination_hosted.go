//go:build !usbhw

package logger

// Without USB hardware the internal port imitates semihosting and the
// external port is muted.
const (
	DestinationInternalUSB = DestinationSemihost
	DestinationExternalUSB = DestinationNone
)

// HasUSB reports whether this build drives real USB ports.
const HasUSB = false

// Internal is the backend of DestinationInternalUSB.
type Internal = Semihost

// External is the backend of DestinationExternalUSB.
type External = Mute

func usbDestinationName(Destination) string {
	return "unknown"
}

// Open returns the backend of d. Unknown destinations get Mute.
func Open(d Destination) Transport {
	switch d {
	case DestinationSemihost:
		return Semihost{}
	default:
		return Mute{}
	}
}
