// Package semihost provides the raw byte write primitive used by the
// semihosting log destination.
//
// On a TinyGo Cortex-M target the write is relayed to the attached
// debugger with the ARM SYS_WRITE semihosting call, so output shows up on
// the host development machine. Hosted builds write to the process
// standard streams instead, which makes the destination usable from tests
// and the command-line tools.
//
//	semihost.Write(semihost.Stdout, []byte("Tick:\t0\r\n"))
package semihost
