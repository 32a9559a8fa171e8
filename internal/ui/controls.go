package ui

import (
	"fmt"

	"powder/internal/core"
	"powder/internal/particle"
	"powder/internal/registry"
)

// Canvas is the part of a world the brush edits.
type Canvas interface {
	PaintBrush(x, y, radius int, id string) error
	EraseBrush(x, y, radius int) error
	Commit()
}

// Recolorer is a world that can recolor its particles at random every tick.
type Recolorer interface {
	SetRainbow(on bool)
}

var (
	// EraseCursor marks the cursor while the brush erases.
	EraseCursor = particle.RGB(255, 0, 0)
	// PaintCursor marks the cursor while the brush paints.
	PaintCursor = particle.RGB(183, 183, 183)
)

// Controls is the interactive state shared by the front ends: material
// selection, brush, modes and cursor. None of it lives in the simulation.
type Controls struct {
	materials []registry.Entry
	selected  int
	brush     int

	paused  bool
	erase   bool
	rainbow bool

	size core.Size
	x, y int
}

// NewControls starts with selected chosen when present, else the first
// material.
func NewControls(size core.Size, materials []registry.Entry, selected string, brush int) *Controls {
	c := &Controls{materials: materials, size: size}
	c.SetBrush(brush)
	for i, m := range materials {
		if m.ID == selected {
			c.selected = i
		}
	}
	return c
}

// Materials lists the selectable materials in toolbar order.
func (c *Controls) Materials() []registry.Entry { return c.materials }

// Selected returns the id the brush paints, or "" with no materials.
func (c *Controls) Selected() string {
	if len(c.materials) == 0 {
		return ""
	}
	return c.materials[c.selected].ID
}

// SelectedIndex returns the toolbar position of the selection.
func (c *Controls) SelectedIndex() int { return c.selected }

// Select picks material i and leaves erase mode. Out-of-range indices are
// ignored.
func (c *Controls) Select(i int) bool {
	if i < 0 || i >= len(c.materials) {
		return false
	}
	c.selected = i
	c.erase = false
	return true
}

func (c *Controls) Paused() bool  { return c.paused }
func (c *Controls) Erasing() bool { return c.erase }
func (c *Controls) Rainbow() bool { return c.rainbow }
func (c *Controls) Brush() int    { return c.brush }

func (c *Controls) TogglePause() { c.paused = !c.paused }
func (c *Controls) ToggleErase() { c.erase = !c.erase }

// ToggleRainbow flips rainbow mode and pushes the new state to s.
func (c *Controls) ToggleRainbow(s Recolorer) {
	c.rainbow = !c.rainbow
	s.SetRainbow(c.rainbow)
}

// SetBrush sets the brush radius, floored at zero.
func (c *Controls) SetBrush(r int) {
	if r < 0 {
		r = 0
	}
	c.brush = r
}

func (c *Controls) GrowBrush()   { c.SetBrush(c.brush + 1) }
func (c *Controls) ShrinkBrush() { c.SetBrush(c.brush - 1) }

// Cursor returns the cursor cell.
func (c *Controls) Cursor() (int, int) { return c.x, c.y }

// SetCursor moves the cursor to (x, y) if that cell is on the grid.
func (c *Controls) SetCursor(x, y int) bool {
	if !c.size.Contains(x, y) {
		return false
	}
	c.x, c.y = x, y
	return true
}

// MoveCursor shifts the cursor, stopping at the grid edge.
func (c *Controls) MoveCursor(dx, dy int) {
	c.SetCursor(c.x+dx, c.y+dy)
}

// CursorColor is red while erasing and gray otherwise.
func (c *Controls) CursorColor() particle.Color {
	if c.erase {
		return EraseCursor
	}
	return PaintCursor
}

// Apply paints or erases at the cursor and commits so the edit is visible
// in the next frame.
func (c *Controls) Apply(cv Canvas) error {
	var err error
	if c.erase {
		err = cv.EraseBrush(c.x, c.y, c.brush)
	} else {
		err = cv.PaintBrush(c.x, c.y, c.brush, c.Selected())
	}
	if err != nil {
		return fmt.Errorf("apply brush at (%d,%d): %w", c.x, c.y, err)
	}
	cv.Commit()
	return nil
}

// Status is the one-line summary the shells print under the grid.
func (c *Controls) Status(ticks uint64, live int) string {
	s := fmt.Sprintf("tick %d  live %d  brush %d", ticks, live, c.brush)
	if c.paused {
		s += "  [paused]"
	}
	if c.erase {
		s += "  [erase]"
	}
	if c.rainbow {
		s += "  [rainbow]"
	}
	return s
}
