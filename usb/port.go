package usb

// Port identifies one of the board's USB ports.
type Port uint8

// Port identifiers.
const (
	PortInternal Port = iota // On-chip full-speed port
	PortExternal             // Full-speed port on the pin header
	portCount
)

// String returns a human-readable port name.
func (p Port) String() string {
	switch p {
	case PortInternal:
		return "internal"
	case PortExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Valid reports whether p names a port of this board.
func (p Port) Valid() bool {
	return p < portCount
}
