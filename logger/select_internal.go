//go:build usblog_internal

package logger

// Selected is the backend this build logs to.
type Selected = Internal

// SelectedDestination is the destination this build logs to.
const SelectedDestination = DestinationInternalUSB
