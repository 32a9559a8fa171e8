//go:build ebiten

package app

import (
	"time"

	"powder/internal/grid"
	"powder/internal/logging"
	"powder/internal/render"
	"powder/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var materialKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a powder world to the ebiten.Game interface.
type Game struct {
	world    World
	log      logging.Logger
	painter  *render.GridPainter
	controls *ui.Controls
	toolbar  *ui.Toolbar
	brush    *ui.BrushOverlay
	snap     grid.Snapshot

	scale int
	seed  int64
}

// New constructs a Game for the provided world.
func New(world World, cfg *Config, log logging.Logger) *Game {
	if log == nil {
		log = logging.Noop()
	}
	size := world.Size()
	controls := ui.NewControls(size, world.Materials(), "", cfg.Brush)
	return &Game{
		world:    world,
		log:      log.With(logging.String("component", "app")),
		painter:  render.NewGridPainter(size.W, size.H),
		controls: controls,
		toolbar:  ui.NewToolbar(controls, size.W*cfg.Scale),
		brush:    ui.NewBrushOverlay(controls, cfg.Scale),
		scale:    cfg.Scale,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
}

// Update handles per-frame input and advances the world.
func (g *Game) Update() error {
	c := g.controls
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		c.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		c.ToggleErase()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		c.ToggleRainbow(g.world)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.world.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		c.ShrinkBrush()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		c.GrowBrush()
	}
	for i, k := range materialKeys {
		if inpututil.IsKeyJustPressed(k) {
			c.Select(i)
		}
	}

	gridH := g.world.Size().H * g.scale
	consumed := g.toolbar.Update(gridH, c.Status(g.world.Ticks(), g.world.Live()))

	mx, my := ebiten.CursorPosition()
	onGrid := c.SetCursor(mx/g.scale, my/g.scale)
	if !consumed && onGrid && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if err := c.Apply(g.world); err != nil {
			g.log.Warn("brush failed", logging.Err(err))
		}
	}

	step := !c.Paused()
	if c.Paused() && inpututil.IsKeyJustPressed(ebiten.KeyF) {
		step = true
	}
	if step {
		g.world.Step()
	}
	return nil
}

// Draw renders the committed frame, the brush and the toolbar.
func (g *Game) Draw(screen *ebiten.Image) {
	g.snap = g.world.SnapshotInto(g.snap)
	x, y := g.controls.Cursor()
	g.painter.Blit(screen, g.snap, g.scale, 0, 0, x, y, g.controls.CursorColor().RGBA())
	g.brush.Draw(screen)
	g.toolbar.Draw(screen, g.snap.Height*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W * g.scale, s.H*g.scale + g.toolbar.Height()
}
