package core

// Index returns the row-major slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Coords is the inverse of Index.
func (s Size) Coords(i int) (int, int) {
	if s.W <= 0 {
		return 0, 0
	}
	return i % s.W, i / s.W
}

// Contains reports whether (x, y) lies inside [0, W) × [0, H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

// Area returns the total number of cells.
func (s Size) Area() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}
