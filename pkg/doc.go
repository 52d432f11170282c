// Package pkg provides shared utilities for the usblog driver layers.
//
// This package contains common functionality used by the USB port drivers,
// the hosted HAL and the command-line tools:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel errors for driver and transfer failures
//   - Component identifiers for log filtering
//
// The logging core in package logger never reports its own transmission
// failures here; only the layers below it do.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with component context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentUSB, "port attached", "port", "internal")
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrBusy) {
//	    // Endpoint could not accept the packet
//	}
package pkg
