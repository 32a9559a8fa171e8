// Package term is a terminal front end for the powder world built on tcell.
// Each grid cell is drawn as two terminal columns so cells look square.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"powder/internal/core"
	"powder/internal/grid"
	"powder/internal/logging"
	"powder/internal/particle"
	"powder/internal/registry"
	"powder/internal/ui"
)

// Simulation is what the front end drives.
type Simulation interface {
	SnapshotInto(grid.Snapshot) grid.Snapshot
	PaintBrush(x, y, radius int, id string) error
	EraseBrush(x, y, radius int) error
	Commit()
	Step()
	Clear()
	SetRainbow(on bool)
	Materials() []registry.Entry
	Ticks() uint64
	Live() int
}

const cellColumns = 2

var background = particle.RGB(10, 10, 10)

// Options configures a Frontend.
type Options struct {
	Selected string // initial material id
	Brush    int    // brush radius in cells
	Logger   logging.Logger
}

// Frontend draws a Simulation into a tcell screen and feeds it input.
type Frontend struct {
	screen   tcell.Screen
	sim      Simulation
	log      logging.Logger
	controls *ui.Controls

	mouseDown bool
	snap      grid.Snapshot
}

// New builds a front end over an initialized screen.
func New(screen tcell.Screen, sim Simulation, opts Options) *Frontend {
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}
	f := &Frontend{
		screen: screen,
		sim:    sim,
		log:    log.With(logging.String("component", "term")),
	}
	f.snap = sim.SnapshotInto(f.snap)
	size := core.Size{W: f.snap.Width, H: f.snap.Height}
	f.controls = ui.NewControls(size, sim.Materials(), opts.Selected, opts.Brush)
	return f
}

// Controls exposes the interactive state.
func (f *Frontend) Controls() *ui.Controls { return f.controls }

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	c := f.controls
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		c.MoveCursor(0, -1)
	case tcell.KeyDown:
		c.MoveCursor(0, 1)
	case tcell.KeyLeft:
		c.MoveCursor(-1, 0)
	case tcell.KeyRight:
		c.MoveCursor(1, 0)
	case tcell.KeyEnter:
		f.apply()
	case tcell.KeyRune:
		return f.handleRune(ev.Rune())
	}
	return true
}

func (f *Frontend) handleRune(r rune) bool {
	c := f.controls
	switch {
	case r == 'q':
		return false
	case r == ' ':
		c.TogglePause()
		f.log.Debug("pause toggled", logging.Bool("paused", c.Paused()))
	case r == 'e':
		c.ToggleErase()
	case r == 'g':
		c.ToggleRainbow(f.sim)
	case r == 'c':
		f.sim.Clear()
	case r == 'f' && c.Paused():
		f.sim.Step()
	case r == '[':
		c.ShrinkBrush()
	case r == ']':
		c.GrowBrush()
	case r >= '1' && r <= '9':
		f.selectMaterial(int(r - '1'))
	}
	return true
}

func (f *Frontend) selectMaterial(i int) {
	if f.controls.Select(i) {
		f.log.Info("selected material", logging.String("id", f.controls.Selected()))
	}
}

func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	if my == f.snap.Height {
		if pressed && !f.mouseDown {
			f.clickToolbar(mx)
		}
		f.mouseDown = false
		return
	}
	onGrid := f.controls.SetCursor(mx/cellColumns, my)
	f.mouseDown = pressed && onGrid
	if f.mouseDown {
		f.apply()
	}
}

func (f *Frontend) apply() {
	if err := f.controls.Apply(f.sim); err != nil {
		f.log.Warn("brush failed", logging.Err(err))
	}
}

// Tick advances the simulation unless paused, continuing any held brush.
func (f *Frontend) Tick() {
	if f.mouseDown {
		f.apply()
	}
	if !f.controls.Paused() {
		f.sim.Step()
	}
}

// Draw renders the committed frame, the cursor and the toolbar.
func (f *Frontend) Draw() {
	f.snap = f.sim.SnapshotInto(f.snap)
	f.screen.Clear()
	for y := 0; y < f.snap.Height; y++ {
		for x := 0; x < f.snap.Width; x++ {
			col := background
			if cell := f.snap.At(x, y); cell.Filled {
				col = cell.Color
			}
			if cx, cy := f.controls.Cursor(); x == cx && y == cy {
				col = f.controls.CursorColor()
			}
			f.setCell(x, y, ' ', cellStyle(col))
		}
	}
	f.drawToolbar(f.snap.Height)
	f.screen.Show()
}

func (f *Frontend) setCell(x, y int, r rune, style tcell.Style) {
	for c := 0; c < cellColumns; c++ {
		f.screen.SetContent(x*cellColumns+c, y, r, nil, style)
	}
}

// cellStyle is the style of a grid cell showing col.
func cellStyle(col particle.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcellColor(col))
}

func tcellColor(col particle.Color) tcell.Color {
	r, g, b := col.Channels()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// toolbarSpans returns the [start, end) terminal columns of each material
// button.
func (f *Frontend) toolbarSpans() [][2]int {
	mats := f.controls.Materials()
	spans := make([][2]int, len(mats))
	x := 0
	for i, m := range mats {
		label := buttonLabel(i, m)
		spans[i] = [2]int{x, x + len(label)}
		x += len(label) + 1
	}
	return spans
}

func buttonLabel(i int, m registry.Entry) string {
	return " " + ui.ButtonLabel(i, m) + " "
}

func (f *Frontend) clickToolbar(mx int) {
	for i, span := range f.toolbarSpans() {
		if mx >= span[0] && mx < span[1] {
			f.selectMaterial(i)
			return
		}
	}
}

func (f *Frontend) drawToolbar(row int) {
	spans := f.toolbarSpans()
	for i, m := range f.controls.Materials() {
		style := tcell.StyleDefault.
			Background(tcellColor(m.Color)).
			Foreground(tcellColor(m.Color.Invert()))
		if i == f.controls.SelectedIndex() && !f.controls.Erasing() {
			style = style.Bold(true).Underline(true)
		}
		for j, r := range buttonLabel(i, m) {
			f.screen.SetContent(spans[i][0]+j, row, r, nil, style)
		}
	}

	status := f.controls.Status(f.sim.Ticks(), f.sim.Live())
	for j, r := range status {
		f.screen.SetContent(j, row+1, r, nil, tcell.StyleDefault)
	}
}

// Run drives the front end at tps ticks per second until the user quits or
// ctx is cancelled.
func (f *Frontend) Run(ctx context.Context, tps int) error {
	f.screen.EnableMouse()
	defer f.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	pace := core.NewFixedStep(tps)
	ticker := time.NewTicker(pace.Interval())
	defer ticker.Stop()

	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !f.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			for n := pace.Due(); n > 0; n-- {
				f.Tick()
			}
			f.Draw()
		}
	}
}
