package app

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"powder/internal/core"
	"powder/internal/grid"
	"powder/internal/logging"
	"powder/internal/registry"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64

	W, H  int
	Scene string
	Brush int
	Check bool

	LogLevel  string
	LogFormat string
	LogFile   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "powder",
		Scale:     8,
		TPS:       30,
		Seed:      42,
		W:         100,
		H:         75,
		Scene:     "sandbox",
		Brush:     1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.W, "w", c.W, "grid width in cells")
	fs.IntVar(&c.H, "h", c.H, "grid height in cells")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene")
	fs.IntVar(&c.Brush, "brush", c.Brush, "brush radius in cells")
	fs.BoolVar(&c.Check, "check", c.Check, "validate the grid after every tick")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file instead of the default output")
}

// Params converts the flags into the key/value form sim factories accept.
func (c *Config) Params() map[string]string {
	return map[string]string{
		"w":     strconv.Itoa(c.W),
		"h":     strconv.Itoa(c.H),
		"seed":  strconv.FormatInt(c.Seed, 10),
		"scene": c.Scene,
		"check": strconv.FormatBool(c.Check),
	}
}

// Logger builds the configured logger. Output goes to LogFile when set and to
// fallback otherwise; the returned closer releases the file.
func (c *Config) Logger(fallback io.Writer) (logging.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = io.Discard
	}
	return logging.New(logging.Config{Level: c.LogLevel, Format: c.LogFormat, Output: out}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// World is the simulation surface the interactive shells drive.
type World interface {
	core.Sim
	SnapshotInto(grid.Snapshot) grid.Snapshot
	PaintBrush(x, y, radius int, id string) error
	EraseBrush(x, y, radius int) error
	Commit()
	Clear()
	SetRainbow(on bool)
	Materials() []registry.Entry
	Ticks() uint64
	Live() int
}

// loggerSetter is implemented by sims that accept a logger after
// construction.
type loggerSetter interface {
	SetLogger(logging.Logger)
}

// Open builds the configured simulation and resets it to the configured seed.
func (c *Config) Open(log logging.Logger) (World, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("sim %q (have %v): %w", c.Sim, core.SimNames(), core.ErrNotFound)
	}
	sim := factory(c.Params())
	w, ok := sim.(World)
	if !ok {
		return nil, fmt.Errorf("sim %q is not interactive: %w", c.Sim, core.ErrInvalidArgument)
	}
	if ls, ok := sim.(loggerSetter); ok && log != nil {
		ls.SetLogger(log)
	}
	w.Reset(c.Seed)
	return w, nil
}
