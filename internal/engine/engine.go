// Package engine advances a powder grid by one tick.
//
// The pass walks the particles recorded at the last commit in row-major order
// and writes into the mutable buffer, which is also what every neighbor probe
// reads. A particle
// moved early in the scan is therefore visible to particles processed later
// in the same tick. Every random draw comes from one RNG in a fixed order, so
// a seed plus an initial grid replays exactly.
package engine

import (
	"time"

	"powder/internal/core"
	"powder/internal/grid"
	"powder/internal/particle"
	"powder/internal/registry"
)

// DefaultTimeStep is the dt handed to the velocity integration each tick.
const DefaultTimeStep float32 = 0.5

// Stats summarizes one tick.
type Stats struct {
	Tick      uint64
	Processed int
	Moved     int
	Reactions map[registry.RelationshipKind]int
	Decayed   int
	Live      int
	Duration  time.Duration
}

// Engine owns no particles; it mutates the grid it was built with.
type Engine struct {
	grid *grid.Grid
	reg  *registry.Registry
	rng  *core.RNG

	dt      float32
	tick    uint64
	rainbow bool

	stats Stats
}

// New returns an engine over g using reg for relationship lookups and rng
// for every random draw.
func New(g *grid.Grid, reg *registry.Registry, rng *core.RNG) *Engine {
	return &Engine{grid: g, reg: reg, rng: rng, dt: DefaultTimeStep}
}

// SetTimeStep overrides the integration dt. Non-positive values restore the
// default.
func (e *Engine) SetTimeStep(dt float32) {
	if dt <= 0 {
		dt = DefaultTimeStep
	}
	e.dt = dt
}

// SetRainbow makes every processed particle take a random color each tick.
// The colors are drawn from the engine's RNG, so toggling it changes the
// draw sequence.
func (e *Engine) SetRainbow(on bool) { e.rainbow = on }

// Rainbow reports whether rainbow coloring is on.
func (e *Engine) Rainbow() bool { return e.rainbow }

// Ticks returns the number of completed passes.
func (e *Engine) Ticks() uint64 { return e.tick }

// Update runs the per-particle pass over the stable frame. It does not
// commit; callers publish the result with Grid.Commit.
func (e *Engine) Update() Stats {
	start := time.Now()
	e.tick++
	e.stats = Stats{Tick: e.tick, Reactions: map[registry.RelationshipKind]int{}}

	// The scan order is fixed at Commit. Particles erased since then are
	// skipped; moved ones are processed once, at their current position.
	for _, p := range e.grid.Order() {
		if p == nil || p.Erased {
			continue
		}
		e.stats.Processed++
		e.update(p)
	}

	e.stats.Duration = time.Since(start)
	return e.stats
}

func (e *Engine) update(p *particle.Particle) {
	if e.rainbow {
		p.Color = particle.Color(e.rng.IntN(1 << 24))
	}
	p.NextVelocity(e.dt)
	x, y := p.X, p.Y+int(p.Velocity)

	switch p.Shift {
	case particle.Slip, particle.Stick:
		x, y = e.shiftGranular(p, x, y)
	case particle.Solid:
		p.Velocity = 0
		y = p.Y
	case particle.Fluid:
		x, y = e.shiftFluid(p, x, y)
	case particle.Gas:
		if p.Decay() {
			e.grid.Erase(p.X, p.Y)
			e.stats.Decayed++
			return
		}
		x, y = e.shiftGas(p)
	}

	if e.react(p) || p.Shift == particle.Solid {
		return
	}
	if e.displaceVertically(p) {
		return
	}
	if e.displaceHorizontally(p) {
		return
	}

	x, y = e.clamp(x, y)
	if x != p.X || y != p.Y {
		e.grid.Move(p, x, y)
		if p.X == x && p.Y == y {
			e.stats.Moved++
		}
	}
}

// clamp applies the edge policy to a computed destination. An x
// overflow lands two columns in from the right edge; a y overflow lands on
// the row just past the floor, which Move then ignores.
func (e *Engine) clamp(x, y int) (int, int) {
	w, h := e.grid.Width(), e.grid.Height()
	if x >= w {
		x = w - 2
	} else if x < 0 {
		x = 0
	}
	if y >= h {
		y = h
	} else if y < 0 {
		y = 0
	}
	return x, y
}
