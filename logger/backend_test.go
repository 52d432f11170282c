package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/usblog/semihost"
	"github.com/ardnew/usblog/usb"
)

// portDriver is a usb.Driver that records transfers.
type portDriver struct {
	mu        sync.Mutex
	inits     int
	status    usb.Status
	transfers []string
}

func (d *portDriver) Init(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inits++
	return nil
}

func (d *portDriver) Transmit(buf []byte) usb.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transfers = append(d.transfers, string(buf))
	return d.status
}

func attachPort(t *testing.T, port usb.Port, status usb.Status) *portDriver {
	t.Helper()
	drv := &portDriver{status: status}
	require.NoError(t, usb.Attach(port, drv))
	t.Cleanup(func() { usb.Detach(port) })
	return drv
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(semihost.SetOutput(semihost.Stdout, &buf))
	return &buf
}

func TestBackends_ZeroSized(t *testing.T) {
	assert.Zero(t, unsafe.Sizeof(Mute{}))
	assert.Zero(t, unsafe.Sizeof(Semihost{}))
	assert.Zero(t, unsafe.Sizeof(USBInternal{}))
	assert.Zero(t, unsafe.Sizeof(USBExternal{}))
	assert.Zero(t, unsafe.Sizeof(Logger[USBInternal]{}))
	assert.Zero(t, unsafe.Sizeof(handle))
}

func TestBackends_InitThenTransmit(t *testing.T) {
	attachPort(t, usb.PortInternal, usb.StatusOK)
	attachPort(t, usb.PortExternal, usb.StatusOK)
	captureStdout(t)

	for _, tr := range []Transport{Mute{}, Semihost{}, USBInternal{}, USBExternal{}} {
		tr.Init()
		for i := 0; i < 3; i++ {
			assert.True(t, tr.Transmit([]byte("line\r\n")), "%T", tr)
		}
	}
}

func TestMute_AlwaysSucceeds(t *testing.T) {
	out := captureStdout(t)

	var m Mute
	m.Init()
	assert.True(t, m.Transmit(nil))
	assert.True(t, m.Transmit([]byte{}))
	assert.True(t, m.Transmit([]byte("Tick:\t0\r\n")))
	assert.Zero(t, out.Len())
}

func TestSemihost_WritesExactBytes(t *testing.T) {
	out := captureStdout(t)

	var s Semihost
	s.Init()
	assert.True(t, s.Transmit([]byte("Tick:\t0\r\n")))
	assert.Equal(t, "Tick:\t0\r\n", out.String())
}

// brokenWriter fails every write.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("host detached") }

func TestSemihost_TrustsWritePrimitive(t *testing.T) {
	t.Cleanup(semihost.SetOutput(semihost.Stdout, brokenWriter{}))

	var s Semihost
	assert.True(t, s.Transmit([]byte("lost")))
}

func TestUSB_StatusTranslation(t *testing.T) {
	tests := []struct {
		status usb.Status
		want   bool
	}{
		{usb.StatusOK, true},
		{usb.StatusBusy, false},
		{usb.StatusMem, false},
		{usb.StatusFail, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			internal := attachPort(t, usb.PortInternal, tt.status)
			external := attachPort(t, usb.PortExternal, tt.status)

			var in USBInternal
			var ex USBExternal
			in.Init()
			ex.Init()

			assert.Equal(t, tt.want, in.Transmit([]byte("in")))
			assert.Equal(t, tt.want, ex.Transmit([]byte("ex")))
			assert.Equal(t, []string{"in"}, internal.transfers)
			assert.Equal(t, []string{"ex"}, external.transfers)
		})
	}
}

func TestUSB_InitIdempotent(t *testing.T) {
	drv := attachPort(t, usb.PortInternal, usb.StatusOK)

	var in USBInternal
	in.Init()
	in.Init()

	assert.Equal(t, 2, drv.inits)
	assert.True(t, in.Transmit([]byte("after double init")))
	assert.Equal(t, []string{"after double init"}, drv.transfers)
}

func TestUSB_UnboundPortFails(t *testing.T) {
	usb.Detach(usb.PortExternal)

	var ex USBExternal
	ex.Init()
	assert.False(t, ex.Transmit([]byte("dropped")))
}

func TestUSB_ConcurrentPorts(t *testing.T) {
	internal := attachPort(t, usb.PortInternal, usb.StatusOK)
	external := attachPort(t, usb.PortExternal, usb.StatusOK)

	var in USBInternal
	var ex USBExternal
	in.Init()
	ex.Init()

	const n = 200
	inMsg := strings.Repeat("i", 48)
	exMsg := strings.Repeat("e", 48)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			assert.True(t, in.Transmit([]byte(inMsg)))
			return nil
		})
		g.Go(func() error {
			assert.True(t, ex.Transmit([]byte(exMsg)))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, internal.transfers, n)
	require.Len(t, external.transfers, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, inMsg, internal.transfers[i])
		assert.Equal(t, exMsg, external.transfers[i])
	}
}

func TestUSB_WaitConnect(t *testing.T) {
	attachPort(t, usb.PortInternal, usb.StatusOK)
	assert.NoError(t, USBInternal{}.WaitConnect(context.Background()))

	usb.Detach(usb.PortExternal)
	assert.Error(t, USBExternal{}.WaitConnect(context.Background()))
}
