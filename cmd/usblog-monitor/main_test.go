package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb"
	"github.com/ardnew/usblog/usb/cdc"
	"github.com/ardnew/usblog/usb/hal/fifo"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startPort(t *testing.T, busDir string, port usb.Port) *cdc.ACM {
	t.Helper()
	acm := cdc.NewACM(fifo.New(busDir, port.String()), cdc.DefaultDataInEP)
	require.NoError(t, acm.Init(context.Background()))
	t.Cleanup(func() { acm.Close() })
	return acm
}

func TestMonitor_CopiesUntilPortStops(t *testing.T) {
	busDir := t.TempDir()
	acm := startPort(t, busDir, usb.PortInternal)

	dirs, err := fifo.FindPorts(busDir, usb.PortInternal.String())
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	require.Equal(t, usb.StatusOK, acm.Transmit([]byte("Tick:\t0\r\n")))

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- monitor(context.Background(), dirs[0], &out) }()

	require.Eventually(t, func() bool {
		return out.String() == "Tick:\t0\r\n"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, acm.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop with the port")
	}
}

func TestRun_ReadsSelectedPort(t *testing.T) {
	busDir := t.TempDir()
	internal := startPort(t, busDir, usb.PortInternal)
	external := startPort(t, busDir, usb.PortExternal)

	require.Equal(t, usb.StatusOK, internal.Transmit([]byte("internal\r\n")))
	require.Equal(t, usb.StatusOK, external.Transmit([]byte("external\r\n")))

	var stdout syncBuffer
	var stderr bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), []string{"usblog-monitor",
			"--bus-dir", busDir,
			"--port", "external",
		}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return stdout.String() == "external\r\n"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, external.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop with the port")
	}
}

func TestFindPort_Missing(t *testing.T) {
	_, err := findPort(context.Background(), t.TempDir(), "internal", 0)
	assert.ErrorIs(t, err, pkg.ErrNoDevice)
}

func TestFindPort_Waits(t *testing.T) {
	busDir := t.TempDir()
	acm := cdc.NewACM(fifo.New(busDir, usb.PortInternal.String()), cdc.DefaultDataInEP)
	t.Cleanup(func() { acm.Close() })

	go func() {
		time.Sleep(100 * time.Millisecond)
		acm.Init(context.Background())
	}()

	dir, err := findPort(context.Background(), busDir, "internal", 2*time.Second)
	require.NoError(t, err)
	assert.Contains(t, dir, "internal-")
}

func TestRun_BadPort(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), []string{"usblog-monitor", "--port", "jtag"}, &stdout, &stderr)
	assert.Error(t, err)
}
