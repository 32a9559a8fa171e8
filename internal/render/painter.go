//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"powder/internal/grid"
)

// GridPainter uploads committed frames into a single image sized to the grid.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit draws snap scaled by scale at the given offset. When cursorX/cursorY
// fall inside the grid that cell is painted with cursor.
func (gp *GridPainter) Blit(dst *ebiten.Image, snap grid.Snapshot, scale int, offX, offY float64, cursorX, cursorY int, cursor color.RGBA) {
	if snap.Width != gp.w || snap.Height != gp.h {
		return
	}
	fillSnapshotRGBA(gp.buf, snap, Background)
	highlightRGBA(gp.buf, gp.w, gp.h, cursorX, cursorY, cursor)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(offX, offY)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
