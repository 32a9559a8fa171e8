package engine

import (
	"powder/internal/grid"
	"powder/internal/particle"
	"powder/internal/registry"
)

// neighborOffsets lists relationship probes in priority order: below, above,
// left, right.
var neighborOffsets = [...][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

// react applies the first relationship found between p and a neighbor. It
// reports whether p's tick is over.
func (e *Engine) react(p *particle.Particle) bool {
	for _, off := range neighborOffsets {
		other := e.grid.At(p.X+off[0], p.Y+off[1])
		if other == nil || other.Erased {
			continue
		}
		rule, ok := e.reg.Between(p, other)
		if !ok {
			continue
		}
		switch rule.Kind {
		case registry.Merge:
			e.merge(p, other, rule.Out)
			return true
		case registry.Consume:
			e.consume(p, other, rule.Out)
			return true
		case registry.Paint:
			e.paint(other, rule.Out)
			return false
		}
		return false
	}
	return false
}

func (e *Engine) merge(p, other *particle.Particle, out string) {
	x, y := other.X, other.Y
	e.grid.Erase(p.X, p.Y)
	e.grid.Erase(x, y)
	e.spawn(x, y, out)
	e.stats.Reactions[registry.Merge]++
}

func (e *Engine) consume(p, other *particle.Particle, out string) {
	victim := p
	if e.isKind(p, out) {
		victim = other
	}
	e.grid.Erase(victim.X, victim.Y)
	e.stats.Reactions[registry.Consume]++
}

func (e *Engine) paint(other *particle.Particle, out string) {
	if e.isKind(other, out) {
		return
	}
	x, y := other.X, other.Y
	e.grid.Erase(x, y)
	e.spawn(x, y, out)
	e.stats.Reactions[registry.Paint]++
}

func (e *Engine) isKind(p *particle.Particle, id string) bool {
	kind, err := e.reg.KindOf(id)
	return err == nil && p.Kind == kind
}

// spawn places a fresh out instance. Rules are validated at registration so
// the identifier always resolves, and (x, y) came from a live particle.
func (e *Engine) spawn(x, y int, id string) {
	fresh, err := e.reg.CreateInstance(id)
	if err != nil {
		panic("engine: relationship output vanished from registry: " + err.Error())
	}
	if err := e.grid.Place(x, y, fresh); err != nil {
		panic("engine: reaction site outside grid: " + err.Error())
	}
}

// displaceVertically sinks p through a lower-priority occupant below it.
func (e *Engine) displaceVertically(p *particle.Particle) bool {
	below := e.grid.At(p.X, p.Y+1)
	if below == nil || !below.CanDisplaceVertically || !grid.CanDisplace(below, p, false) {
		return false
	}
	e.grid.Move(p, p.X, p.Y+1)
	e.stats.Moved++
	return true
}

// displaceHorizontally pushes into a lower-priority side neighbor. A coin
// decides which side is examined first.
func (e *Engine) displaceHorizontally(p *particle.Particle) bool {
	sides := [2]int{-1, 1}
	if !e.rng.Bool() {
		sides = [2]int{1, -1}
	}
	for _, dx := range sides {
		side := e.grid.At(p.X+dx, p.Y)
		if side == nil || !side.CanDisplaceHorizontally || !grid.CanDisplace(side, p, false) {
			continue
		}
		e.grid.Move(p, p.X+dx, p.Y)
		e.stats.Moved++
		return true
	}
	return false
}
