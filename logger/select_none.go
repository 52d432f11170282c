//go:build !usblog_semihost && !usblog_internal && !usblog_external

package logger

// Selected is the backend this build logs to.
type Selected = Mute

// SelectedDestination is the destination this build logs to.
const SelectedDestination = DestinationNone
