//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BrushOverlay outlines the brush footprint around the cursor.
type BrushOverlay struct {
	controls *Controls
	scale    int
}

// NewBrushOverlay draws for a grid rendered at scale pixels per cell.
func NewBrushOverlay(c *Controls, scale int) *BrushOverlay {
	if scale <= 0 {
		scale = 1
	}
	return &BrushOverlay{controls: c, scale: scale}
}

// Draw strokes the brush circle. A zero radius brush is shown by the cursor
// cell alone.
func (o *BrushOverlay) Draw(screen *ebiten.Image) {
	r := o.controls.Brush()
	if r == 0 {
		return
	}
	x, y := o.controls.Cursor()
	s := float32(o.scale)
	cx := (float32(x) + 0.5) * s
	cy := (float32(y) + 0.5) * s
	radius := (float32(r) + 0.5) * s
	vector.StrokeCircle(screen, cx, cy, radius, 1, o.controls.CursorColor().RGBA(), true)
}
