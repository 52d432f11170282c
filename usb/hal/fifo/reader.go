package fifo

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb/hal"
)

// pollInterval bounds each blocking read so cancellation is noticed.
const pollInterval = 100 * time.Millisecond

// Reader is the host side of one IN endpoint of a FIFO port.
type Reader struct {
	f       *os.File
	header  [headerSize]byte
	scratch [MaxPacketSize]byte
}

// FindPorts returns the directories of all ports named name on the bus
// rooted at busDir, oldest first. Port ids are version 7 uuids, so name
// order is creation order.
func FindPorts(busDir, name string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(busDir, name+"-*"))
	if err != nil {
		return nil, err
	}
	dirs := matches[:0]
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// OpenReader opens IN endpoint address of the port in portDir for reading.
func OpenReader(portDir string, address uint8) (*Reader, error) {
	num := hal.EndpointNumber(address)
	if !hal.IsIn(address) || num == 0 || num > hal.MaxEndpoints {
		return nil, pkg.ErrInvalidEndpoint
	}
	path := filepath.Join(portDir, endpointFIFO(num))
	f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", endpointFIFO(num), err)
	}
	return &Reader{f: f}, nil
}

// ReadPacket reads one DATA message into buf and returns its length.
// It blocks until a message arrives or ctx is cancelled; io.EOF means the
// port was stopped.
func (r *Reader) ReadPacket(ctx context.Context, buf []byte) (int, error) {
	if _, err := r.readFull(ctx, r.header[:]); err != nil {
		return 0, err
	}

	msgType := r.header[0]
	length := int(binary.LittleEndian.Uint16(r.header[1:3]))

	if msgType != msgData {
		return 0, pkg.ErrProtocol
	}
	if length == 0 {
		return 0, nil // Zero-length packet
	}
	if length > len(buf) {
		// Skip the payload so the next read starts on a header
		if err := r.discard(ctx, length); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("packet of %d bytes: %w", length, pkg.ErrBufferTooSmall)
	}

	return r.readFull(ctx, buf[:length])
}

// Close closes the endpoint.
func (r *Reader) Close() error {
	return r.f.Close()
}

// discard reads and drops n bytes.
func (r *Reader) discard(ctx context.Context, n int) error {
	for n > 0 {
		chunk := min(n, len(r.scratch))
		if _, err := r.readFull(ctx, r.scratch[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// readFull reads exactly len(buf) bytes, polling so ctx is honoured.
func (r *Reader) readFull(ctx context.Context, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		r.f.SetReadDeadline(time.Now().Add(pollInterval))
		n, err := r.f.Read(buf[total:])
		total += n
		if err != nil {
			if os.IsTimeout(err) {
				continue
			}
			if err == io.EOF && total > 0 {
				return total, io.ErrUnexpectedEOF
			}
			return total, err
		}
	}
	return total, nil
}
