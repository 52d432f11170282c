package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/ardnew/usblog/logger"
)

const (
	// LoggerTypeDefault is the text log format.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the JSON log format.
	LoggerTypeJSON = "json"
)

// Config is the tick loop configuration.
type Config struct {
	Destination logger.Destination `yaml:"destination"`
	BusDir      string             `yaml:"bus_dir"`
	Interval    time.Duration      `yaml:"interval"`
	Count       int                `yaml:"count"`
	Modulo      int                `yaml:"modulo"`
	WaitForHost bool               `yaml:"wait_for_host"`
	Debug       bool               `yaml:"debug"`
	LoggerType  string             `yaml:"logger"`
}

// DefaultConfig mirrors the board test program: a tick every 500ms,
// counting 0 to 99, forever.
func DefaultConfig() Config {
	return Config{
		Destination: logger.SelectedDestination,
		BusDir:      os.TempDir(),
		Interval:    500 * time.Millisecond,
		Modulo:      100,
		LoggerType:  LoggerTypeDefault,
	}
}

// LoadConfigFile reads a YAML config file on top of cfg.
func LoadConfigFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would make the loop misbehave.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Modulo <= 0 {
		return fmt.Errorf("modulo must be positive, got %d", c.Modulo)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	return nil
}

// flags holds command-line values and whether the user set them.
type flags struct {
	envPrefix  string
	configFile string

	destination    string
	destinationSet bool
	busDir         string
	busDirSet      bool
	interval       time.Duration
	intervalSet    bool
	count          int
	countSet       bool
	modulo         int
	moduloSet      bool
	wait           bool
	waitSet        bool
	debug          bool
	debugSet       bool
	loggerType     string
	loggerTypeSet  bool
}

func registerFlags(app *kingpin.Application) *flags {
	f := &flags{envPrefix: envarName(app.Name) + "_"}
	def := DefaultConfig()

	app.Flag("config", "YAML config file; flags override its values.").StringVar(&f.configFile)
	app.Flag("destination", "Log destination (none, semihost, internal, external).").
		Default(def.Destination.String()).IsSetByUser(&f.destinationSet).StringVar(&f.destination)
	app.Flag("bus-dir", "Directory the hosted USB ports create their FIFOs in.").
		Default(def.BusDir).IsSetByUser(&f.busDirSet).StringVar(&f.busDir)
	app.Flag("interval", "Delay between ticks.").
		Default(def.Interval.String()).IsSetByUser(&f.intervalSet).DurationVar(&f.interval)
	app.Flag("count", "Number of ticks to emit, 0 for no limit.").
		Default("0").IsSetByUser(&f.countSet).IntVar(&f.count)
	app.Flag("modulo", "Tick counter wraps at this value.").
		Default(fmt.Sprint(def.Modulo)).IsSetByUser(&f.moduloSet).IntVar(&f.modulo)
	app.Flag("wait", "Wait until the USB port driver reports the port connected before ticking.").
		IsSetByUser(&f.waitSet).BoolVar(&f.wait)
	app.Flag("debug", "Enable debug logging.").
		IsSetByUser(&f.debugSet).BoolVar(&f.debug)
	app.Flag("logger", "Selects the logger type.").
		Default(LoggerTypeDefault).IsSetByUser(&f.loggerTypeSet).
		EnumVar(&f.loggerType, LoggerTypeDefault, LoggerTypeJSON)

	return f
}

// config merges defaults, the config file and flags, in that order.
func (f *flags) config() (Config, error) {
	cfg := DefaultConfig()

	if f.configFile != "" {
		var err error
		if cfg, err = LoadConfigFile(f.configFile, cfg); err != nil {
			return cfg, err
		}
	}

	if f.set("destination", f.destinationSet) {
		d, err := logger.ParseDestination(f.destination)
		if err != nil {
			return cfg, err
		}
		cfg.Destination = d
	}
	if f.set("bus-dir", f.busDirSet) {
		cfg.BusDir = f.busDir
	}
	if f.set("interval", f.intervalSet) {
		cfg.Interval = f.interval
	}
	if f.set("count", f.countSet) {
		cfg.Count = f.count
	}
	if f.set("modulo", f.moduloSet) {
		cfg.Modulo = f.modulo
	}
	if f.set("wait", f.waitSet) {
		cfg.WaitForHost = f.wait
	}
	if f.set("debug", f.debugSet) {
		cfg.Debug = f.debug
	}
	if f.set("logger", f.loggerTypeSet) {
		cfg.LoggerType = f.loggerType
	}

	return cfg, cfg.Validate()
}

// set reports whether a flag was given on the command line or through its
// environment variable. Kingpin only marks the former as set by the user.
func (f *flags) set(name string, onCommandLine bool) bool {
	if onCommandLine {
		return true
	}
	_, ok := os.LookupEnv(f.envPrefix + envarName(name))
	return ok
}

// envarName follows kingpin's default envar naming: upper case, with
// dashes turned into underscores.
func envarName(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
}
