//go:build tinygo && cortexm

package semihost

import (
	"fmt"
	"io"

	"tinygo.org/x/drivers/semihosting"

	"github.com/ardnew/usblog/pkg"
)

// Write writes buf to the host stream fd through the debugger.
func Write(fd int, buf []byte) (int, error) {
	var w io.Writer
	switch fd {
	case Stdout:
		w = semihosting.Stdout
	case Stderr:
		w = semihosting.Stderr
	default:
		pkg.LogDebug(pkg.ComponentSemihost, "write to unknown stream", "fd", fd)
		return 0, fmt.Errorf("semihost stream %d: %w", fd, pkg.ErrInvalidParameter)
	}
	return w.Write(buf)
}
