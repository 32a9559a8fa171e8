// Package grid is the double-buffered spatial store of a powder simulation.
//
// The stable buffer is the last committed frame. The mutable buffer is the
// frame being built; every query and write goes to it, and Commit is the only
// way its contents become visible. The mutable buffer holds the live
// *particle.Particle values. The stable frame holds value copies taken at
// Commit, so nothing done to a live particle between commits shows through.
//
// Commit also records which live particle was in each slot. That scan order
// is what the update pass walks; it follows the live particles, so one moved
// or erased earlier in a pass is seen at its new state later in the pass.
package grid

import (
	"fmt"

	"powder/internal/core"
	"powder/internal/particle"
)

// Grid stores particles in row-major order.
type Grid struct {
	size core.Size

	// Written only by Commit, indexed like mutable: value copies, occupancy
	// and the live pointer scan order.
	stable []particle.Particle
	filled []bool
	order  []*particle.Particle

	mutable []*particle.Particle
}

// New allocates a grid with both buffers empty. Non-positive dimensions are
// raised to 1.
func New(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	size := core.Size{W: w, H: h}
	return &Grid{
		size:    size,
		stable:  make([]particle.Particle, size.Area()),
		filled:  make([]bool, size.Area()),
		order:   make([]*particle.Particle, size.Area()),
		mutable: make([]*particle.Particle, size.Area()),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.size.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.size.H }

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool { return g.size.Contains(x, y) }

// IsOccupied reports whether the mutable buffer holds a particle at (x, y).
// Coordinates outside the grid are unoccupied.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.At(x, y) != nil
}

// At returns the mutable-buffer occupant at (x, y), or nil.
func (g *Grid) At(x, y int) *particle.Particle {
	if !g.size.Contains(x, y) {
		return nil
	}
	return g.mutable[g.size.Index(x, y)]
}

// StableAt returns the committed copy of the occupant at (x, y), or nil. The
// copy belongs to the grid and is overwritten by the next Commit; callers
// must treat it as read-only.
func (g *Grid) StableAt(x, y int) *particle.Particle {
	if !g.size.Contains(x, y) {
		return nil
	}
	i := g.size.Index(x, y)
	if !g.filled[i] {
		return nil
	}
	return &g.stable[i]
}

// Place writes p into the mutable buffer at (x, y) and records the
// coordinate on p. If p already occupies another slot that slot is vacated.
// A different occupant at (x, y) is replaced and marked erased.
func (g *Grid) Place(x, y int, p *particle.Particle) error {
	if !g.size.Contains(x, y) {
		return fmt.Errorf("place (%d,%d) in %dx%d grid: %w", x, y, g.size.W, g.size.H, core.ErrOutOfBounds)
	}
	if p == nil {
		return g.Erase(x, y)
	}
	if g.holds(p) {
		g.mutable[g.size.Index(p.X, p.Y)] = nil
	}
	idx := g.size.Index(x, y)
	if prev := g.mutable[idx]; prev != nil && prev != p {
		prev.Erased = true
	}
	g.mutable[idx] = p
	p.X, p.Y = x, y
	p.Erased = false
	return nil
}

// Erase clears the mutable slot at (x, y) and marks its occupant erased.
func (g *Grid) Erase(x, y int) error {
	if !g.size.Contains(x, y) {
		return fmt.Errorf("erase (%d,%d) in %dx%d grid: %w", x, y, g.size.W, g.size.H, core.ErrOutOfBounds)
	}
	idx := g.size.Index(x, y)
	if p := g.mutable[idx]; p != nil {
		p.Erased = true
		g.mutable[idx] = nil
	}
	return nil
}

// Move relocates p to (toX, toY), swapping with any occupant there. It is a
// no-op when the destination is outside the grid or p is not present in the
// mutable buffer at its recorded coordinate.
func (g *Grid) Move(p *particle.Particle, toX, toY int) {
	if p == nil || !g.size.Contains(toX, toY) || !g.holds(p) {
		return
	}
	from := g.size.Index(p.X, p.Y)
	to := g.size.Index(toX, toY)
	if from == to {
		return
	}
	displaced := g.mutable[to]
	g.mutable[from] = displaced
	if displaced != nil {
		displaced.X, displaced.Y = p.X, p.Y
	}
	g.mutable[to] = p
	p.X, p.Y = toX, toY
}

// holds reports whether p sits in the mutable buffer at its own coordinate.
func (g *Grid) holds(p *particle.Particle) bool {
	return g.size.Contains(p.X, p.Y) && g.mutable[g.size.Index(p.X, p.Y)] == p
}

// Commit publishes the mutable buffer as the new stable frame and records
// the scan order for the next update pass.
func (g *Grid) Commit() {
	copy(g.order, g.mutable)
	for i, p := range g.mutable {
		if p == nil {
			g.stable[i] = particle.Particle{}
			g.filled[i] = false
			continue
		}
		g.stable[i] = *p
		g.filled[i] = true
	}
}

// Clear empties the mutable buffer. The stable frame is untouched until the
// next Commit.
func (g *Grid) Clear() {
	for i, p := range g.mutable {
		if p != nil {
			p.Erased = true
			g.mutable[i] = nil
		}
	}
}

// Filled counts occupied cells in the stable frame.
func (g *Grid) Filled() int {
	n := 0
	for _, ok := range g.filled {
		if ok {
			n++
		}
	}
	return n
}

// Order returns the live particles that occupied each slot at the last
// Commit, in row-major order. Entries may since have moved or been erased.
// Callers must not modify the slice.
func (g *Grid) Order() []*particle.Particle { return g.order }

// Validate checks that every occupied slot of both buffers holds a live
// particle whose coordinate matches the slot, and that no particle occupies
// two slots of the mutable buffer.
func (g *Grid) Validate() error {
	for i, ok := range g.filled {
		if !ok {
			continue
		}
		x, y := g.size.Coords(i)
		p := &g.stable[i]
		if p.X != x || p.Y != y {
			return fmt.Errorf("stable slot (%d,%d) holds particle recorded at (%d,%d)", x, y, p.X, p.Y)
		}
		if p.Erased {
			return fmt.Errorf("stable slot (%d,%d) holds an erased particle", x, y)
		}
	}
	return g.validate("mutable", g.mutable)
}

func (g *Grid) validate(name string, buf []*particle.Particle) error {
	seen := make(map[*particle.Particle]int)
	for i, p := range buf {
		if p == nil {
			continue
		}
		x, y := g.size.Coords(i)
		if p.X != x || p.Y != y {
			return fmt.Errorf("%s slot (%d,%d) holds particle recorded at (%d,%d)", name, x, y, p.X, p.Y)
		}
		if p.Erased {
			return fmt.Errorf("%s slot (%d,%d) holds an erased particle", name, x, y)
		}
		if j, dup := seen[p]; dup {
			dx, dy := g.size.Coords(j)
			return fmt.Errorf("%s particle at (%d,%d) also stored at (%d,%d)", name, x, y, dx, dy)
		}
		seen[p] = i
	}
	return nil
}
