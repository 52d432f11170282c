package fifo

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb/hal"
)

// MaxPacketSize is the full-speed bulk packet size.
const MaxPacketSize = 64

// DefaultWriteTimeout bounds how long Write waits for room in a pipe.
const DefaultWriteTimeout = 10 * time.Millisecond

// Message types for the FIFO protocol (must match Reader).
const (
	msgData = 0x02 // DATA packet
)

// Header size for messages.
const headerSize = 3 // type (1) + length (2)

// Connection signal bytes (one-way signaling to host).
const (
	sigConnect    = 0x01 // Port attached
	sigDisconnect = 0x00 // Port detached
)

// FIFO file names.
const (
	fifoConnection = "connection"
)

// endpointFIFO returns the FIFO file name of IN endpoint num.
func endpointFIFO(num uint8) string {
	return fmt.Sprintf("ep%d_in", num)
}

// HAL implements hal.PortHAL using named pipes (FIFOs).
// Each Init creates a unique subdirectory {name}-{uuid} under the bus
// directory so several ports, and several runs, can share one bus. The
// uuid is version 7, so port directories sort by creation time.
type HAL struct {
	// Bus directory (root directory shared with the host side)
	busDir string
	name   string

	// Port subdirectory (busDir/{name}-{uuid}/)
	portDir string
	id      string

	connectionWrite *os.File                   // Port signals attach state
	epInWrite       [hal.MaxEndpoints]*os.File // Port writes IN data

	writeTimeout time.Duration

	// State
	connected uint32 // Atomic: 1 = attached, 0 = detached

	// Synchronization
	mutex      sync.RWMutex
	writeMutex sync.Mutex // Held across one framed message
	initDone   bool
	stopped    bool          // closeCh is closed; the next Init renews both channels
	connectCh  chan struct{} // Closed by Start
	closeCh    chan struct{} // Closed by Stop

	writeBuf [MaxPacketSize + headerSize]byte
}

// New creates a FIFO-based port HAL named name (for example "internal")
// on the bus rooted at busDir.
func New(busDir, name string) *HAL {
	return &HAL{
		busDir:       busDir,
		name:         name,
		writeTimeout: DefaultWriteTimeout,
		connectCh:    make(chan struct{}),
		closeCh:      make(chan struct{}),
	}
}

// SetWriteTimeout changes how long Write waits for room in a full pipe
// before reporting pkg.ErrBusy.
func (h *HAL) SetWriteTimeout(d time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.writeTimeout = d
}

// Init creates the port subdirectory and its FIFO files.
func (h *HAL) Init(ctx context.Context) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.initDone {
		return pkg.ErrAlreadyRunning
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if h.stopped {
		h.connectCh = make(chan struct{})
		h.closeCh = make(chan struct{})
		h.stopped = false
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("port id: %w", err)
	}
	h.id = id.String()
	h.portDir = filepath.Join(h.busDir, h.name+"-"+h.id)

	if err := os.MkdirAll(h.portDir, 0o755); err != nil {
		return fmt.Errorf("create port dir: %w", err)
	}

	if err := h.createFIFO(fifoConnection); err != nil {
		return err
	}
	for i := uint8(1); i <= hal.MaxEndpoints; i++ {
		if err := h.createFIFO(endpointFIFO(i)); err != nil {
			return err
		}
	}

	// O_RDWR keeps the open from blocking until a reader appears
	h.connectionWrite, err = h.openFIFO(fifoConnection, os.O_RDWR|syscall.O_NONBLOCK)
	if err != nil {
		h.cleanup()
		return err
	}
	for i := uint8(1); i <= hal.MaxEndpoints; i++ {
		h.epInWrite[i-1], err = h.openFIFO(endpointFIFO(i), os.O_RDWR|syscall.O_NONBLOCK)
		if err != nil {
			h.cleanup()
			return err
		}
	}

	h.initDone = true
	pkg.LogInfo(pkg.ComponentHAL, "fifo port HAL initialized",
		"busDir", h.busDir,
		"portDir", h.portDir,
		"id", h.id)

	return nil
}

// Start attaches the port and signals the host side.
func (h *HAL) Start() error {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.initDone {
		return pkg.ErrNotConfigured
	}

	if _, err := h.connectionWrite.Write([]byte{sigConnect}); err != nil {
		pkg.LogWarn(pkg.ComponentHAL, "failed to signal connection", "error", err)
	}

	if atomic.CompareAndSwapUint32(&h.connected, 0, 1) {
		close(h.connectCh)
	}

	pkg.LogInfo(pkg.ComponentHAL, "fifo port HAL started", "port", h.name)
	return nil
}

// Stop detaches the port, closes its FIFOs and removes its directory.
// Init attaches it again under a new directory.
func (h *HAL) Stop() error {
	h.mutex.Lock()
	if h.connectionWrite != nil {
		h.connectionWrite.Write([]byte{sigDisconnect})
	}
	atomic.StoreUint32(&h.connected, 0)
	if !h.stopped {
		close(h.closeCh)
		h.stopped = true
	}
	h.mutex.Unlock()

	// Wait for an in-flight message before closing its file
	h.writeMutex.Lock()
	defer h.writeMutex.Unlock()
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.cleanup()

	h.initDone = false
	pkg.LogInfo(pkg.ComponentHAL, "fifo port HAL stopped", "port", h.name)
	return nil
}

// cleanup closes all FIFOs and removes the port directory.
func (h *HAL) cleanup() {
	if h.connectionWrite != nil {
		h.connectionWrite.Close()
		h.connectionWrite = nil
	}
	for i := range h.epInWrite {
		if h.epInWrite[i] != nil {
			h.epInWrite[i].Close()
			h.epInWrite[i] = nil
		}
	}
	if h.portDir != "" {
		os.RemoveAll(h.portDir)
	}
}

// Write writes one DATA message to an IN endpoint.
func (h *HAL) Write(ctx context.Context, address uint8, data []byte) (int, error) {
	num := hal.EndpointNumber(address)
	if !hal.IsIn(address) || num == 0 || num > hal.MaxEndpoints {
		return 0, pkg.ErrInvalidEndpoint
	}
	if len(data) > MaxPacketSize {
		return 0, fmt.Errorf("packet of %d bytes: %w", len(data), pkg.ErrInvalidParameter)
	}
	if !h.IsConnected() {
		return 0, pkg.ErrNotConnected
	}

	h.mutex.RLock()
	f := h.epInWrite[num-1]
	timeout := h.writeTimeout
	closeCh := h.closeCh
	h.mutex.RUnlock()

	if f == nil {
		return 0, pkg.ErrNotConfigured
	}

	if err := h.sendMessage(ctx, f, timeout, closeCh, msgData, data); err != nil {
		return 0, fmt.Errorf("write %s: %w", endpointFIFO(num), err)
	}
	return len(data), nil
}

// MaxPacketSize returns the largest packet Write accepts.
func (h *HAL) MaxPacketSize() int {
	return MaxPacketSize
}

// IsConnected returns true while the port is attached.
func (h *HAL) IsConnected() bool {
	return atomic.LoadUint32(&h.connected) == 1
}

// WaitConnect blocks until Start attaches the port or ctx is cancelled.
// Attaching does not depend on a host having the endpoint open: bytes
// written before a Reader opens wait in the pipe.
func (h *HAL) WaitConnect(ctx context.Context) error {
	h.mutex.RLock()
	connectCh, closeCh := h.connectCh, h.closeCh
	h.mutex.RUnlock()

	select {
	case <-connectCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-closeCh:
		return pkg.ErrCancelled
	}
}

// PortDir returns the port subdirectory path, empty before Init.
func (h *HAL) PortDir() string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.portDir
}

// ID returns the port's unique identifier.
func (h *HAL) ID() string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.id
}

// createFIFO creates a named pipe at the given path.
func (h *HAL) createFIFO(name string) error {
	path := filepath.Join(h.portDir, name)

	// Remove existing file if any
	os.Remove(path)

	if err := syscall.Mkfifo(path, 0o666); err != nil {
		return fmt.Errorf("mkfifo %s: %w", name, err)
	}

	return nil
}

// openFIFO opens a named pipe with the given flags.
func (h *HAL) openFIFO(name string, flag int) (*os.File, error) {
	path := filepath.Join(h.portDir, name)
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// sendMessage sends a protocol message with header [type, len_lo, len_hi, data...].
// Messages never exceed PIPE_BUF, so the kernel writes each one whole or
// not at all and a timeout cannot leave a torn frame in the pipe.
func (h *HAL) sendMessage(ctx context.Context, f *os.File, timeout time.Duration, closeCh <-chan struct{}, msgType byte, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-closeCh:
		return pkg.ErrCancelled
	default:
	}

	h.writeMutex.Lock()
	defer h.writeMutex.Unlock()

	buf := h.writeBuf[:]
	n := len(data)

	buf[0] = msgType
	binary.LittleEndian.PutUint16(buf[1:3], uint16(n))
	copy(buf[headerSize:], data)

	total := headerSize + n

	f.SetWriteDeadline(time.Now().Add(timeout))
	written := 0
	for written < total {
		m, err := f.Write(buf[written:total])
		if m > 0 {
			written += m
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return pkg.ErrBusy
			}
			return err
		}
	}
	return nil
}

// Compile-time interface check
var _ hal.PortHAL = (*HAL)(nil)
