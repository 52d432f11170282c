// Package logger binds debug output to a destination chosen at build time.
//
// A destination is one of: muted, semihosted to the host's stdout, or one
// of the board's two USB CDC ports. Each has a backend type with the same
// two methods, Init and Transmit:
//
//   - [Mute] reports success and sends nothing
//   - [Semihost] writes through [github.com/ardnew/usblog/semihost]
//   - [USBInternal] and [USBExternal] send through the shared, zero-sized
//     [github.com/ardnew/usblog/usb.Handle]
//
// There is no common base type and no dispatch on the hot path: callers
// hold a [Logger] instantiated with a concrete backend.
//
// # Build configuration
//
// The usbhw build tag marks boards with dedicated USB ports. Without it,
// [DestinationInternalUSB] is the same constant as [DestinationSemihost]
// and [DestinationExternalUSB] the same as [DestinationNone]; the type
// aliases [Internal] and [External] follow. Client code can therefore name
// a USB port unconditionally.
//
// One of the tags usblog_semihost, usblog_internal or usblog_external
// picks [Selected], the backend the build logs to. With none of them the
// build is muted. Setting two of them fails to compile.
//
//	tinygo build -tags usbhw,usblog_internal ./cmd/usblog-tick
//
//	var log logger.Logger[logger.Selected]
//
//	func main() {
//	    log.StartLog(context.Background(), false)
//	    for i := 0; ; i = (i + 1) % 100 {
//	        log.PrintLine("Tick:\t%d", i)
//	        time.Sleep(500 * time.Millisecond)
//	    }
//	}
//
// Tools that read the destination from configuration use [Open] once at
// startup and accept one interface call per transmit.
//
// # Failure
//
// Transmit never panics and never retries. A false result means the line
// was dropped; whether that matters is the caller's decision. The package
// does not log its own failures.
package logger
