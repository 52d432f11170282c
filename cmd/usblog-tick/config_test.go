package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/usblog/logger"
)

func parseFlags(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	app := kingpin.New("usblog-tick", "")
	f := registerFlags(app)
	_, err := app.Parse(args)
	require.NoError(t, err)
	return f.config()
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := parseFlags(t)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, logger.SelectedDestination, cfg.Destination)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 100, cfg.Modulo)
	assert.Zero(t, cfg.Count)
}

func TestConfig_File(t *testing.T) {
	path := writeConfig(t, `
destination: semihost
interval: 250ms
count: 7
wait_for_host: true
`)

	cfg, err := parseFlags(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, logger.DestinationSemihost, cfg.Destination)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 7, cfg.Count)
	assert.True(t, cfg.WaitForHost)
	assert.Equal(t, 100, cfg.Modulo)
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
destination: semihost
interval: 250ms
modulo: 10
`)

	cfg, err := parseFlags(t, "--config", path, "--destination", "none", "--interval", "1s")
	require.NoError(t, err)
	assert.Equal(t, logger.DestinationNone, cfg.Destination)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 10, cfg.Modulo)
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown destination", []string{"--destination", "jtag"}},
		{"zero interval", []string{"--interval", "0s"}},
		{"zero modulo", []string{"--modulo", "0"}},
		{"negative count", []string{"--count=-1"}},
		{"missing file", []string{"--config", filepath.Join(os.TempDir(), "no-such-usblog.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "destination: [semihost\n")
	_, err := parseFlags(t, "--config", path)
	assert.Error(t, err)

	path = writeConfig(t, "destination: jtag\n")
	_, err = parseFlags(t, "--config", path)
	assert.ErrorIs(t, err, logger.ErrUnknownDestination)
}

func TestConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "interval: 250ms\n")
	t.Setenv("USBLOG_TICK_INTERVAL", "2s")

	app := kingpin.New("usblog-tick", "")
	app.DefaultEnvars()
	f := registerFlags(app)
	_, err := app.Parse([]string{"--config", path})
	require.NoError(t, err)

	cfg, err := f.config()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Interval)
}
