//go:build !ebiten

package ui

// BrushOverlay is a no-op placeholder used when the ebiten build tag is absent.
type BrushOverlay struct{}

// NewBrushOverlay constructs a stub overlay.
func NewBrushOverlay(*Controls, int) *BrushOverlay { return &BrushOverlay{} }

// Draw is a no-op placeholder.
func (o *BrushOverlay) Draw(any) {}
