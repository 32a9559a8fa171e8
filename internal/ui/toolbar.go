//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Toolbar renders the material buttons and status line under the grid and
// turns clicks on it into selections.
type Toolbar struct {
	controls *Controls
	width    int
	rects    []image.Rectangle
	panel    *ebiten.Image
	pixel    *ebiten.Image
	status   string
}

// NewToolbar lays out one button per material across width pixels.
func NewToolbar(c *Controls, width int) *Toolbar {
	t := &Toolbar{controls: c, width: width}
	t.rects = LayoutButtons(c.Materials(), width)
	t.pixel = ebiten.NewImage(1, 1)
	t.pixel.Fill(color.White)
	return t
}

// Height is the toolbar's pixel height.
func (t *Toolbar) Height() int { return ToolbarHeightFor(t.rects) }

// Update handles clicks; offsetY is where the toolbar starts on screen. It
// reports whether the click was consumed.
func (t *Toolbar) Update(offsetY int, status string) bool {
	t.status = status
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if my < offsetY {
		return false
	}
	if i := ButtonAt(t.rects, image.Pt(mx, my-offsetY)); i >= 0 {
		t.controls.Select(i)
	}
	return true
}

// Draw paints the toolbar at offsetY.
func (t *Toolbar) Draw(screen *ebiten.Image, offsetY int) {
	h := t.Height()
	if t.panel == nil || t.panel.Bounds().Dx() != t.width || t.panel.Bounds().Dy() != h {
		t.panel = ebiten.NewImage(t.width, h)
	}
	t.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	for i, m := range t.controls.Materials() {
		rect := t.rects[i]
		bg := m.Color.RGBA()
		t.fill(rect, bg)
		if i == t.controls.SelectedIndex() && !t.controls.Erasing() {
			t.outline(rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
		label := ButtonLabel(i, m)
		bounds := text.BoundString(face, label)
		x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
		y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
		text.Draw(t.panel, label, face, x, y, m.Color.Invert().RGBA())
	}

	statusY := h - toolbarPadding - 3
	text.Draw(t.panel, t.status, face, toolbarPadding, statusY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(offsetY))
	screen.DrawImage(t.panel, op)
}

func (t *Toolbar) fill(rect image.Rectangle, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	t.panel.DrawImage(t.pixel, op)
}

func (t *Toolbar) outline(rect image.Rectangle, col color.RGBA) {
	t.fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), col)
	t.fill(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), col)
	t.fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), col)
	t.fill(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}
