// Command usblog-tick emits a tick counter through a debug log destination.
//
// It is the hosted counterpart of the board's USB CDC test program: every
// interval it sends "Tick:\t<n>\r\n", counting from 0 to 99 and wrapping.
//
// Usage:
//
//	usblog-tick [flags]
//
// The destination defaults to the one selected at build time (see package
// logger). Built with the usbhw tag, the internal and external USB ports
// are simulated with named pipes under --bus-dir; read them with
// usblog-monitor. Without usbhw, "internal" falls back to semihosting
// (stdout) and "external" is muted.
//
// Flags can also be set through USBLOG_TICK_* environment variables or a
// YAML file given with --config:
//
//	destination: internal
//	bus_dir: /tmp/usblog
//	interval: 500ms
//	count: 0
//	modulo: 100
//	wait_for_host: true
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/ardnew/usblog/logger"
	"github.com/ardnew/usblog/pkg"
)

// component identifies this executable for structured logging.
const component = pkg.ComponentTick

// Run runs the tick command with the given arguments.
func Run(ctx context.Context, args []string, stderr io.Writer) error {
	app := kingpin.New("usblog-tick", "Emit a tick counter through a debug log destination.")
	app.DefaultEnvars()
	app.ErrorWriter(stderr)
	app.UsageWriter(stderr)
	f := registerFlags(app)

	if _, err := app.Parse(args[1:]); err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	cfg, err := f.config()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg, stderr)

	ports, err := attachPorts(cfg.BusDir)
	if err != nil {
		return err
	}
	defer ports.Close()

	log := logger.New(logger.Open(cfg.Destination))

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

	// Tick loop.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				if err := log.StartLog(ctx, cfg.WaitForHost); err != nil {
					return fmt.Errorf("could not start log: %w", err)
				}
				pkg.LogInfo(component, "ticking",
					"destination", cfg.Destination,
					"interval", cfg.Interval,
					"count", cfg.Count)

				stats := Tick(ctx, log, cfg.Interval, cfg.Count, cfg.Modulo)
				pkg.LogInfo(component, "done", "sent", stats.Sent, "dropped", stats.Dropped)
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func setupLogging(cfg Config, stderr io.Writer) {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	pkg.SetLogLevel(level)

	format := pkg.LogFormatText
	if cfg.LoggerType == LoggerTypeJSON {
		format = pkg.LogFormatJSON
	}
	pkg.SetLogFormat(stderr, format)
}

func main() {
	if err := Run(context.Background(), os.Args, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
