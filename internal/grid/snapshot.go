package grid

import "powder/internal/particle"

// Cell is the read-only view of one committed cell.
type Cell struct {
	Filled bool
	Color  particle.Color
}

// Snapshot is a copy of the stable frame for renderers.
type Snapshot struct {
	Width, Height int
	Cells         []Cell
}

// At returns the cell at (x, y); out-of-range coordinates read as empty.
func (s Snapshot) At(x, y int) Cell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Cell{}
	}
	return s.Cells[y*s.Width+x]
}

// Snapshot copies the stable frame. The result does not alias the grid.
func (g *Grid) Snapshot() Snapshot {
	return g.SnapshotInto(Snapshot{})
}

// SnapshotInto is Snapshot reusing dst's cell storage when it is large enough.
func (g *Grid) SnapshotInto(dst Snapshot) Snapshot {
	n := len(g.stable)
	if cap(dst.Cells) < n {
		dst.Cells = make([]Cell, n)
	}
	dst.Cells = dst.Cells[:n]
	dst.Width, dst.Height = g.size.W, g.size.H
	for i, ok := range g.filled {
		if !ok {
			dst.Cells[i] = Cell{}
			continue
		}
		dst.Cells[i] = Cell{Filled: true, Color: g.stable[i].Color}
	}
	return dst
}
