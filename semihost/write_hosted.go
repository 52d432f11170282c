//go:build !(tinygo && cortexm)

package semihost

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ardnew/usblog/pkg"
)

var (
	outputMutex sync.RWMutex
	outputs     = map[int]io.Writer{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
)

// SetOutput redirects the host stream fd to w and returns a function that
// restores the previous writer. A nil w closes the stream. It exists for
// tests and tools that capture semihosted output.
func SetOutput(fd int, w io.Writer) (restore func()) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	prev, had := outputs[fd]
	if w == nil {
		delete(outputs, fd)
	} else {
		outputs[fd] = w
	}
	return func() {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		if had {
			outputs[fd] = prev
		} else {
			delete(outputs, fd)
		}
	}
}

// Write writes buf to the host stream fd.
func Write(fd int, buf []byte) (int, error) {
	outputMutex.RLock()
	w, ok := outputs[fd]
	outputMutex.RUnlock()

	if !ok {
		pkg.LogDebug(pkg.ComponentSemihost, "write to closed stream", "fd", fd, "bytes", len(buf))
		return 0, fmt.Errorf("semihost write fd %d: %w", fd, pkg.ErrInvalidParameter)
	}
	if len(buf) == 0 {
		return 0, nil
	}
	return w.Write(buf)
}
