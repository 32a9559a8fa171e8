package render

import (
	"image/color"

	"powder/internal/grid"
)

// Background is the color of empty cells.
var Background = color.RGBA{R: 10, G: 10, B: 10, A: 255}

// fillSnapshotRGBA converts committed cells into RGBA pixels in buf. Empty
// cells take the background color. buf must hold 4 bytes per cell.
func fillSnapshotRGBA(buf []byte, snap grid.Snapshot, background color.RGBA) {
	for i, cell := range snap.Cells {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		col := background
		if cell.Filled {
			col = cell.Color.RGBA()
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// highlightRGBA paints one cell of buf with col, ignoring cells outside the
// w×h frame.
func highlightRGBA(buf []byte, w, h, x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	base := (y*w + x) * 4
	if base+3 >= len(buf) {
		return
	}
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}
