//go:build usblog_external

package logger

// Selected is the backend this build logs to.
type Selected = External

// SelectedDestination is the destination this build logs to.
const SelectedDestination = DestinationExternalUSB
