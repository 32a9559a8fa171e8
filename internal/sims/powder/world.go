// Package powder is the falling-material world: a registry of materials, a
// double-buffered grid, and the update engine, behind the paint / step /
// snapshot surface the shells drive.
package powder

import (
	"fmt"

	"powder/internal/core"
	"powder/internal/engine"
	"powder/internal/grid"
	"powder/internal/logging"
	"powder/internal/registry"
)

// Observer receives the summary of every completed tick.
type Observer interface {
	ObserveTick(engine.Stats)
}

// Option customizes a World at construction.
type Option func(*World)

// WithLogger sets the world's logger.
func WithLogger(l logging.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithObserver attaches a tick observer.
func WithObserver(o Observer) Option {
	return func(w *World) { w.observer = o }
}

// World is a single-threaded powder simulation.
type World struct {
	cfg Config
	log logging.Logger

	reg  *registry.Registry
	grid *grid.Grid
	rng  *core.RNG
	eng  *engine.Engine

	observer Observer
	last     engine.Stats
	rainbow  bool
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world populated with the default materials.
func NewWithConfig(cfg Config, opts ...Option) *World {
	w := newWorld(cfg, nil, opts)
	w.reg = registry.New(w.log)
	if err := RegisterDefaults(w.reg); err != nil {
		panic(fmt.Sprintf("powder: default materials: %v", err))
	}
	w.eng = w.newEngine()
	return w
}

// NewWithRegistry returns a world over a caller-built registry.
func NewWithRegistry(cfg Config, reg *registry.Registry, opts ...Option) *World {
	w := newWorld(cfg, reg, opts)
	if w.reg == nil {
		w.reg = registry.New(w.log)
	}
	w.eng = w.newEngine()
	return w
}

func newWorld(cfg Config, reg *registry.Registry, opts []Option) *World {
	w := &World{
		cfg:  cfg,
		log:  logging.Noop(),
		reg:  reg,
		grid: grid.New(cfg.Width, cfg.Height),
		rng:  core.NewRNG(cfg.Seed),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(logging.String("sim", "powder"))
	return w
}

func (w *World) newEngine() *engine.Engine {
	e := engine.New(w.grid, w.reg, w.rng)
	e.SetTimeStep(w.cfg.TimeStep)
	e.SetRainbow(w.rainbow)
	return e
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "powder" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Registry exposes the material registry for additional registrations.
func (w *World) Registry() *registry.Registry { return w.reg }

// Grid exposes the underlying grid.
func (w *World) Grid() *grid.Grid { return w.grid }

// Materials lists the registered materials in registration order.
func (w *World) Materials() []registry.Entry { return w.reg.Entries() }

// SetLogger replaces the world's logger.
func (w *World) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Noop()
	}
	w.log = l.With(logging.String("sim", "powder"))
}

// SetRainbow turns random per-tick recoloring on or off. It survives Reset.
func (w *World) SetRainbow(on bool) {
	w.rainbow = on
	w.eng.SetRainbow(on)
}

// Rainbow reports whether random recoloring is on.
func (w *World) Rainbow() bool { return w.rainbow }

// SetObserver replaces the tick observer; nil detaches it.
func (w *World) SetObserver(o Observer) { w.observer = o }

// Ticks returns the number of steps since the last Reset.
func (w *World) Ticks() uint64 { return w.eng.Ticks() }

// LastStats returns the summary of the most recent step.
func (w *World) LastStats() engine.Stats { return w.last }

// Live counts particles in the committed frame.
func (w *World) Live() int { return w.grid.Filled() }

// Paint places a fresh id particle at (x, y) when the cell is empty. The
// change is visible to readers after the next Commit or Step.
func (w *World) Paint(x, y int, id string) error {
	if !w.grid.InBounds(x, y) {
		return fmt.Errorf("paint %q at (%d,%d): %w", id, x, y, core.ErrOutOfBounds)
	}
	if w.grid.IsOccupied(x, y) {
		return nil
	}
	p, err := w.reg.CreateInstance(id)
	if err != nil {
		return fmt.Errorf("paint at (%d,%d): %w", x, y, err)
	}
	return w.grid.Place(x, y, p)
}

// Erase removes the occupant at (x, y), if any.
func (w *World) Erase(x, y int) error {
	return w.grid.Erase(x, y)
}

// PaintBrush paints a disc of the given radius centred on (x, y). Cells
// outside the grid are skipped rather than reported.
func (w *World) PaintBrush(x, y, radius int, id string) error {
	if _, err := w.reg.KindOf(id); err != nil {
		return fmt.Errorf("brush: %w", err)
	}
	return w.brush(x, y, radius, func(cx, cy int) error { return w.Paint(cx, cy, id) })
}

// EraseBrush erases a disc of the given radius centred on (x, y).
func (w *World) EraseBrush(x, y, radius int) error {
	return w.brush(x, y, radius, w.Erase)
}

func (w *World) brush(x, y, radius int, apply func(int, int) error) error {
	if radius < 0 {
		radius = 0
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 || !w.grid.InBounds(x+dx, y+dy) {
				continue
			}
			if err := apply(x+dx, y+dy); err != nil {
				return err
			}
		}
	}
	return nil
}

// Commit publishes pending paint and erase operations.
func (w *World) Commit() {
	w.grid.Commit()
	w.checkInvariants()
}

// Step runs one update pass and commits it.
func (w *World) Step() {
	stats := w.eng.Update()
	w.grid.Commit()
	w.checkInvariants()

	stats.Live = w.grid.Filled()
	w.last = stats
	if w.observer != nil {
		w.observer.ObserveTick(stats)
	}
}

func (w *World) checkInvariants() {
	if !w.cfg.CheckInvariants {
		return
	}
	if err := w.grid.Validate(); err != nil {
		panic(fmt.Sprintf("powder: grid invariant violated after tick %d: %v", w.eng.Ticks(), err))
	}
}

// Clear empties the world and publishes the empty frame.
func (w *World) Clear() {
	w.grid.Clear()
	w.grid.Commit()
	w.log.Info("cleared world")
}

// Snapshot copies the committed frame for rendering.
func (w *World) Snapshot() grid.Snapshot { return w.grid.Snapshot() }

// SnapshotInto is Snapshot reusing dst's storage.
func (w *World) SnapshotInto(dst grid.Snapshot) grid.Snapshot { return w.grid.SnapshotInto(dst) }

// Reset empties the grid, reseeds the random source, and lays out the
// configured scene. A zero seed falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)
	w.grid.Clear()
	w.eng = w.newEngine()
	w.last = engine.Stats{}

	name := w.cfg.Scene
	if name == "" {
		name = "empty"
	}
	scene, ok := sceneByName(name)
	if !ok {
		w.log.Warn("unknown scene, starting empty", logging.String("scene", name))
	} else if err := scene(w); err != nil {
		w.log.Warn("scene incomplete", logging.String("scene", name), logging.Err(err))
	}
	w.Commit()
	w.log.Info("reset world",
		logging.Int64("seed", effective),
		logging.String("scene", name),
		logging.Int("live", w.grid.Filled()))
}

func init() {
	core.Register("powder", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
