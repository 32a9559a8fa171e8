package engine

import (
	"powder/internal/particle"
	"powder/internal/registry"
)

// shiftGranular handles SLIP and STICK. Once resting on something the
// particle tries to slide one column toward a side whose cell and floor are
// both free. STICK only slides while resting on its own kind.
func (e *Engine) shiftGranular(p *particle.Particle, x, y int) (int, int) {
	if !e.grid.HasNeighborBelow(p) {
		return x, y
	}
	below := e.grid.At(p.X, p.Y+1)
	p.Velocity = 0
	y = p.Y

	if p.Shift == particle.Stick && !registry.SameKind(p, below) {
		return x, y
	}

	canLeft := !e.grid.IsOccupied(p.X-1, p.Y+1) && !e.grid.IsOccupied(p.X-1, p.Y)
	canRight := !e.grid.IsOccupied(p.X+1, p.Y+1) && !e.grid.IsOccupied(p.X+1, p.Y)
	return x + e.pickSide(canLeft, canRight), y
}

// shiftFluid lets a blocked fluid wander sideways on a coin flip.
func (e *Engine) shiftFluid(p *particle.Particle, x, y int) (int, int) {
	if !e.grid.HasNeighborBelow(p) && p.Y < e.grid.Height()-1 {
		return x, y
	}
	p.Velocity = 0
	y = p.Y

	canLeft := !e.grid.IsOccupied(p.X-1, p.Y)
	canRight := !e.grid.IsOccupied(p.X+1, p.Y)
	if !e.rng.Bool() {
		return x, y
	}
	return x + e.pickSide(canLeft, canRight), y
}

// shiftGas rolls, in order, to rise, to sink, and to drift sideways.
func (e *Engine) shiftGas(p *particle.Particle) (int, int) {
	p.Velocity = 0
	x, y := p.X, p.Y
	traits := p.Gas

	if e.roll(traits.FloatMax, traits.FloatNeeded) {
		if !e.grid.HasNeighborAbove(p) {
			y = p.Y - 1
		}
	} else if e.roll(traits.SinkMax, traits.SinkNeeded) {
		y = p.Y + 1
	}

	if e.roll(traits.ShiftMax, traits.ShiftNeeded) {
		canLeft := !e.grid.IsOccupied(p.X-1, y)
		canRight := !e.grid.IsOccupied(p.X+1, y)
		x += e.pickSide(canLeft, canRight)
	}
	return x, y
}

// roll draws from [0, max) and reports whether the draw reached needed.
func (e *Engine) roll(max, needed int) bool {
	if max <= 0 {
		return false
	}
	return e.rng.IntN(max) >= needed
}

// pickSide returns -1, 0 or +1. The RNG is only consulted when both sides
// are open.
func (e *Engine) pickSide(canLeft, canRight bool) int {
	switch {
	case canLeft && canRight:
		if e.rng.Bool() {
			return -1
		}
		return 1
	case canLeft:
		return -1
	case canRight:
		return 1
	default:
		return 0
	}
}
