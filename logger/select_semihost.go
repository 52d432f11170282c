//go:build usblog_semihost

package logger

// Selected is the backend this build logs to.
type Selected = Semihost

// SelectedDestination is the destination this build logs to.
const SelectedDestination = DestinationSemihost
