package grid

import "powder/internal/particle"

// HasNeighborBelow reports an occupant directly under p.
func (g *Grid) HasNeighborBelow(p *particle.Particle) bool {
	return g.IsOccupied(p.X, p.Y+1)
}

// HasNeighborAbove reports an occupant directly over p.
func (g *Grid) HasNeighborAbove(p *particle.Particle) bool {
	return g.IsOccupied(p.X, p.Y-1)
}

// HasNeighborsBelow reports occupants on both lower diagonals of p.
func (g *Grid) HasNeighborsBelow(p *particle.Particle) bool {
	return g.IsOccupied(p.X+1, p.Y+1) && g.IsOccupied(p.X-1, p.Y+1)
}

// HasNeighborsBeside reports occupants on both sides of p.
func (g *Grid) HasNeighborsBeside(p *particle.Particle) bool {
	return g.IsOccupied(p.X+1, p.Y) && g.IsOccupied(p.X-1, p.Y)
}

// CanDisplace reports whether original may be pushed out of its cell by with.
// Either side being immovable forbids it; otherwise with must outrank
// original, or be outranked by it when reverse is set.
func CanDisplace(original, with *particle.Particle, reverse bool) bool {
	if original == nil || with == nil {
		return false
	}
	if original.Priority == particle.Immovable || with.Priority == particle.Immovable {
		return false
	}
	if reverse {
		return with.Priority < original.Priority
	}
	return with.Priority > original.Priority
}
