package semihost

// Host stream identifiers accepted by Write.
const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)
