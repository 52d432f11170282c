package logger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardnew/usblog/pkg"
)

// ErrTransmit is returned by Logger.Write when the destination drops the
// buffer.
var ErrTransmit = errors.New("log transmit failed")

// MaxPrintLen is the longest message Print and PrintLine send; longer
// output is truncated.
const MaxPrintLen = 128

// Newline terminates every PrintLine message.
const Newline = "\r\n"

// connectWaiter is implemented by backends that know when a host is
// listening.
type connectWaiter interface {
	WaitConnect(ctx context.Context) error
}

// Logger is the front end of a destination backend. With a zero-sized T
// the Logger is zero-sized too and its zero value is ready for StartLog.
//
//	var log logger.Logger[logger.Selected]
//	log.StartLog(ctx, false)
//	log.PrintLine("Tick:\t%d", n)
type Logger[T Transport] struct {
	transport T
}

// New returns a Logger for transport. Zero-sized backends need no
// constructor; New is for transports picked at startup, such as the
// result of Open.
func New[T Transport](transport T) Logger[T] {
	return Logger[T]{transport: transport}
}

// Init initializes the backend.
func (l Logger[T]) Init() {
	l.transport.Init()
}

// Transmit sends buf through the backend.
func (l Logger[T]) Transmit(buf []byte) bool {
	return l.transport.Transmit(buf)
}

// StartLog initializes the backend. With waitForHost set it then blocks
// until the port driver reports the port connected, or ctx is done.
// What "connected" means is up to the driver: the hosted FIFO ports
// connect once they are attached to the bus, whether or not a monitor is
// reading. Destinations without connection state return at once.
func (l Logger[T]) StartLog(ctx context.Context, waitForHost bool) error {
	l.Init()
	if !waitForHost {
		return nil
	}
	if w, ok := any(l.transport).(connectWaiter); ok {
		pkg.LogDebug(pkg.ComponentLogger, "waiting for port connection")
		return w.WaitConnect(ctx)
	}
	return nil
}

// Print formats a message and transmits it.
func (l Logger[T]) Print(format string, args ...any) bool {
	var buf [MaxPrintLen]byte
	msg := appendTruncated(buf[:0], MaxPrintLen, format, args...)
	return l.Transmit(msg)
}

// PrintLine formats a message, terminates it with Newline and transmits
// it. Truncation never removes the terminator.
func (l Logger[T]) PrintLine(format string, args ...any) bool {
	var buf [MaxPrintLen]byte
	msg := appendTruncated(buf[:0], MaxPrintLen-len(Newline), format, args...)
	msg = append(msg, Newline...)
	return l.Transmit(msg)
}

// Write implements io.Writer so formatted output, for example from a
// log/slog handler, can go through the destination.
func (l Logger[T]) Write(p []byte) (int, error) {
	if !l.Transmit(p) {
		return 0, ErrTransmit
	}
	return len(p), nil
}

// appendTruncated formats into dst, keeping at most limit bytes.
func appendTruncated(dst []byte, limit int, format string, args ...any) []byte {
	out := fmt.Appendf(dst, format, args...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
