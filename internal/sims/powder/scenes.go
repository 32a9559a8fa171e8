package powder

import "sort"

// Scene lays out an initial arrangement through the world's paint surface.
// It may draw from the world's random source, which Reset has just seeded.
type Scene func(w *World) error

var scenes = map[string]Scene{
	"empty":     func(*World) error { return nil },
	"sandbox":   sandbox,
	"bonfire":   bonfire,
	"hourglass": hourglass,
}

// RegisterScene adds or replaces a named scene.
func RegisterScene(name string, s Scene) {
	if name == "" || s == nil {
		return
	}
	scenes[name] = s
}

// SceneNames lists the available scenes in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sceneByName(name string) (Scene, bool) {
	s, ok := scenes[name]
	return s, ok
}

func (w *World) fillRect(x0, y0, x1, y1 int, id string) error {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !w.grid.InBounds(x, y) {
				continue
			}
			if err := w.Paint(x, y, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// sandbox: a rock floor, a loose heap of sand on the left and a pool of
// water on the right.
func sandbox(w *World) error {
	width, height := w.grid.Width(), w.grid.Height()
	if err := w.fillRect(0, height-1, width-1, height-1, Rock); err != nil {
		return err
	}
	for y := height / 3; y < height-1; y++ {
		for x := 0; x < width/2; x++ {
			if w.rng.IntN(3) == 0 {
				if err := w.Paint(x, y, Sand); err != nil {
					return err
				}
			}
		}
	}
	return w.fillRect(width*2/3, height/2, width-1, height-2, Water)
}

// bonfire: a wood pile with a layer of fire on top.
func bonfire(w *World) error {
	width, height := w.grid.Width(), w.grid.Height()
	x0, x1 := width/3, width*2/3
	top := height * 2 / 3
	if err := w.fillRect(x0, top, x1, height-1, Wood); err != nil {
		return err
	}
	return w.fillRect(x0, top-1, x1, top-1, Fire)
}

// hourglass: sand held above a rock funnel with a one-cell neck.
func hourglass(w *World) error {
	width, height := w.grid.Width(), w.grid.Height()
	mid := width / 2
	neck := height / 2
	for y := 0; y < neck; y++ {
		gap := neck - y
		if err := w.fillRect(0, y, mid-gap-1, y, Rock); err != nil {
			return err
		}
		if err := w.fillRect(mid+gap+1, y, width-1, y, Rock); err != nil {
			return err
		}
	}
	return w.fillRect(mid-neck/2, 0, mid+neck/2, neck/3, Sand)
}
