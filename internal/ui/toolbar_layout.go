package ui

import (
	"fmt"
	"image"

	"powder/internal/registry"
)

const (
	toolbarPadding = 4
	buttonGap      = 4
	buttonHeight   = 18
	charWidth      = 7 // basicfont.Face7x13 advance
	statusHeight   = 16

	// ToolbarHeight is the pixel height reserved below the grid.
	ToolbarHeight = toolbarPadding*2 + buttonHeight + statusHeight
)

// ButtonLabel is the caption of material i's toolbar button.
func ButtonLabel(i int, m registry.Entry) string {
	return fmt.Sprintf("%d %s", i+1, m.Label)
}

// LayoutButtons returns one rectangle per material, left to right, wrapping
// when a row would exceed width. Rectangles are relative to the toolbar
// origin.
func LayoutButtons(materials []registry.Entry, width int) []image.Rectangle {
	rects := make([]image.Rectangle, len(materials))
	x, y := toolbarPadding, toolbarPadding
	for i, m := range materials {
		w := len(ButtonLabel(i, m))*charWidth + 2*toolbarPadding
		if x > toolbarPadding && x+w > width-toolbarPadding {
			x = toolbarPadding
			y += buttonHeight + buttonGap
		}
		rects[i] = image.Rect(x, y, x+w, y+buttonHeight)
		x += w + buttonGap
	}
	return rects
}

// ButtonAt returns the index of the button containing p, or -1.
func ButtonAt(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// ToolbarRows returns how many button rows rects occupy.
func ToolbarRows(rects []image.Rectangle) int {
	if len(rects) == 0 {
		return 1
	}
	last := rects[len(rects)-1]
	return (last.Min.Y-toolbarPadding)/(buttonHeight+buttonGap) + 1
}

// ToolbarHeightFor is the toolbar height needed for rects.
func ToolbarHeightFor(rects []image.Rectangle) int {
	return ToolbarHeight + (ToolbarRows(rects)-1)*(buttonHeight+buttonGap)
}
