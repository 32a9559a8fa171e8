//go:build !ebiten

package ui

// Toolbar is a no-op placeholder for headless builds.
type Toolbar struct{}

// NewToolbar returns nil in the headless build.
func NewToolbar(*Controls, int) *Toolbar { return nil }

// Height is zero in the headless build.
func (t *Toolbar) Height() int { return 0 }

// Update never consumes input in the headless build.
func (t *Toolbar) Update(int, string) bool { return false }

// Draw is a no-op in the headless build.
func (t *Toolbar) Draw(any, int) {}
