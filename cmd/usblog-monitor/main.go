// Command usblog-monitor prints what a hosted USB port transmits.
//
// It is the terminal end of the FIFO-simulated CDC ports that usblog-tick
// creates when built with the usbhw tag. The newest port directory named
// after --port under --bus-dir is opened and every packet read from its
// data IN endpoint is copied to stdout until the port stops.
//
// Usage:
//
//	usblog-monitor --bus-dir /tmp --port internal
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/ardnew/usblog/pkg"
	"github.com/ardnew/usblog/usb"
	"github.com/ardnew/usblog/usb/cdc"
	"github.com/ardnew/usblog/usb/hal/fifo"
)

const component = pkg.ComponentMonitor

type options struct {
	busDir string
	port   string
	wait   time.Duration
	debug  bool
}

// Run runs the monitor with the given arguments.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("usblog-monitor", "Print the output of a hosted USB log port.")
	app.DefaultEnvars()
	app.ErrorWriter(stderr)
	app.UsageWriter(stderr)

	var opts options
	app.Flag("bus-dir", "Directory the hosted USB ports create their FIFOs in.").
		Default(os.TempDir()).StringVar(&opts.busDir)
	app.Flag("port", "Port to monitor (internal, external).").
		Default(usb.PortInternal.String()).
		EnumVar(&opts.port, usb.PortInternal.String(), usb.PortExternal.String())
	app.Flag("wait", "How long to wait for the port to appear, 0 to fail at once.").
		Default("0s").DurationVar(&opts.wait)
	app.Flag("debug", "Enable debug logging.").BoolVar(&opts.debug)

	if _, err := app.Parse(args[1:]); err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	if opts.debug {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	pkg.SetLogFormat(stderr, pkg.LogFormatText)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				pkg.LogDebug(component, "termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Port reader.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				dir, err := findPort(ctx, opts.busDir, opts.port, opts.wait)
				if err != nil {
					return err
				}
				return monitor(ctx, dir, stdout)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// findPort returns the newest directory of the named port, polling for up
// to wait until one appears.
func findPort(ctx context.Context, busDir, name string, wait time.Duration) (string, error) {
	deadline := time.Now().Add(wait)
	for {
		dirs, err := fifo.FindPorts(busDir, name)
		if err != nil {
			return "", err
		}
		if len(dirs) > 0 {
			return dirs[len(dirs)-1], nil
		}
		if !time.Now().Before(deadline) {
			return "", fmt.Errorf("no %s port under %s: %w", name, busDir, pkg.ErrNoDevice)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// monitor copies every packet of the port's data IN endpoint to w. It
// returns nil when the port stops or ctx is cancelled.
func monitor(ctx context.Context, portDir string, w io.Writer) error {
	r, err := fifo.OpenReader(portDir, cdc.DefaultDataInEP)
	if err != nil {
		return err
	}
	defer r.Close()

	pkg.LogInfo(component, "monitoring port", "dir", portDir)

	buf := make([]byte, fifo.MaxPacketSize)
	for {
		n, err := r.ReadPacket(ctx, buf)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			pkg.LogInfo(component, "port closed", "dir", portDir)
			return nil
		case err != nil:
			return fmt.Errorf("read port: %w", err)
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
}

func main() {
	if err := Run(context.Background(), os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
