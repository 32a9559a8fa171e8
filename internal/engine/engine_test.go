package engine

import (
	"testing"

	"powder/internal/core"
	"powder/internal/grid"
	"powder/internal/particle"
	"powder/internal/registry"
)

type fixture struct {
	t    *testing.T
	grid *grid.Grid
	reg  *registry.Registry
	eng  *Engine
}

func newFixture(t *testing.T, w, h int, seed int64) *fixture {
	t.Helper()
	reg := registry.New(nil)
	smoke := particle.New(particle.Gas, 1, particle.RGB(120, 120, 120), 2)
	wet := particle.New(particle.Slip, 2, particle.RGB(149, 116, 73), 0)
	wet.CanDisplaceHorizontally = false
	// vapor always tries to rise and never sinks or drifts.
	vapor := particle.New(particle.Gas, 1, particle.RGB(220, 220, 255), 100)
	vapor.Gas.FloatNeeded = 0
	protos := []struct {
		id    string
		proto *particle.Particle
	}{
		{"sand", particle.New(particle.Slip, 2, particle.RGB(246, 225, 176), 0)},
		{"wet", wet},
		{"lead", particle.New(particle.Slip, 3, particle.RGB(90, 90, 110), 0)},
		{"water", particle.New(particle.Fluid, 0, particle.RGB(35, 95, 230), 0)},
		{"rock", particle.New(particle.Solid, particle.Immovable, particle.RGB(61, 59, 60), 0)},
		{"wood", particle.New(particle.Solid, particle.Immovable, particle.RGB(225, 145, 39), 0)},
		{"fire", particle.New(particle.Gas, 1, particle.RGB(242, 78, 13), 255)},
		{"smoke", smoke},
		{"glue", particle.New(particle.Stick, 2, particle.RGB(200, 200, 0), 0)},
		{"acid", particle.New(particle.Fluid, 0, particle.RGB(120, 240, 40), 0)},
		{"vapor", vapor},
		{"spark", particle.New(particle.Gas, 1, particle.RGB(255, 230, 120), 1)},
	}
	for _, p := range protos {
		if err := reg.Register(p.id, p.proto); err != nil {
			t.Fatalf("register %s: %v", p.id, err)
		}
	}
	rules := []registry.Relationship{
		{A: "sand", B: "water", Out: "wet", Kind: registry.Merge},
		{A: "fire", B: "wood", Out: "fire", Kind: registry.Paint},
		{A: "water", B: "fire", Out: "water", Kind: registry.Consume},
		{A: "acid", B: "wood", Out: "acid", Kind: registry.Paint},
		{A: "spark", B: "wood", Out: "spark", Kind: registry.Paint},
	}
	for _, r := range rules {
		if err := reg.RegisterRelationship(r.A, r.B, r.Out, r.Kind); err != nil {
			t.Fatalf("relationship %v: %v", r, err)
		}
	}
	g := grid.New(w, h)
	return &fixture{t: t, grid: g, reg: reg, eng: New(g, reg, core.NewRNG(seed))}
}

func (f *fixture) place(x, y int, id string) *particle.Particle {
	f.t.Helper()
	p, err := f.reg.CreateInstance(id)
	if err != nil {
		f.t.Fatalf("create %s: %v", id, err)
	}
	if err := f.grid.Place(x, y, p); err != nil {
		f.t.Fatalf("place %s: %v", id, err)
	}
	return p
}

func (f *fixture) step() Stats {
	f.t.Helper()
	s := f.eng.Update()
	f.grid.Commit()
	if err := f.grid.Validate(); err != nil {
		f.t.Fatalf("tick %d: %v", s.Tick, err)
	}
	return s
}

func (f *fixture) idAt(x, y int) string {
	p := f.grid.StableAt(x, y)
	if p == nil {
		return ""
	}
	id, err := f.reg.IdentifierOf(p)
	if err != nil {
		f.t.Fatalf("identifier at (%d,%d): %v", x, y, err)
	}
	return id
}

func TestSandFallsOneCellPerTick(t *testing.T) {
	f := newFixture(t, 5, 5, 1)
	f.place(2, 0, "sand")
	f.grid.Commit()

	for want := 1; want <= 4; want++ {
		f.step()
		if f.idAt(2, want) != "sand" {
			t.Fatalf("after tick %d sand not at (2,%d)", want, want)
		}
	}
	f.step()
	if f.idAt(2, 4) != "sand" {
		t.Fatalf("sand should rest on the floor")
	}
}

func TestSandWaterMerge(t *testing.T) {
	f := newFixture(t, 10, 10, 7)
	f.place(5, 4, "sand")
	f.place(5, 5, "water")
	f.grid.Commit()

	s := f.step()
	if f.idAt(5, 5) != "wet" {
		t.Fatalf("(5,5) = %q, want wet", f.idAt(5, 5))
	}
	if f.idAt(5, 4) != "" {
		t.Fatalf("(5,4) = %q, want empty", f.idAt(5, 4))
	}
	if s.Reactions[registry.Merge] != 1 {
		t.Fatalf("merge count = %d", s.Reactions[registry.Merge])
	}
	if f.grid.Filled() != 1 {
		t.Fatalf("filled = %d, want 1", f.grid.Filled())
	}
}

func TestRockNeverMoves(t *testing.T) {
	f := newFixture(t, 6, 6, 3)
	f.place(3, 3, "rock")
	f.grid.Commit()
	for i := 0; i < 50; i++ {
		f.step()
		if f.idAt(3, 3) != "rock" || f.grid.Filled() != 1 {
			t.Fatalf("rock moved on tick %d", i+1)
		}
	}
}

func TestSolidIsNotDisplacedBySand(t *testing.T) {
	f := newFixture(t, 4, 4, 11)
	f.place(1, 0, "sand")
	f.place(1, 1, "rock")
	f.grid.Commit()
	for i := 0; i < 5; i++ {
		f.step()
	}
	if f.idAt(1, 1) != "rock" || f.idAt(1, 0) != "sand" {
		t.Fatalf("rock displaced")
	}
	if f.grid.Filled() != 2 {
		t.Fatalf("filled = %d, want 2", f.grid.Filled())
	}
}

func TestGasDecaysAway(t *testing.T) {
	f := newFixture(t, 5, 5, 9)
	f.place(2, 2, "smoke")
	f.grid.Commit()

	s := f.step()
	if f.grid.Filled() != 1 || s.Decayed != 0 {
		t.Fatalf("smoke vanished early")
	}
	s = f.step()
	if f.grid.Filled() != 0 || s.Decayed != 1 {
		t.Fatalf("smoke with life 2 should be gone after two ticks, filled = %d", f.grid.Filled())
	}
}

func TestGasDarkensAsItDecays(t *testing.T) {
	f := newFixture(t, 5, 5, 4)
	p := f.place(2, 4, "fire")
	f.grid.Commit()
	f.step()
	if p.Life != 254 || p.Color == p.OriginalColor {
		t.Fatalf("life = %d color = %06x after one tick", p.Life, uint32(p.Color))
	}
}

func TestFirePaintsWood(t *testing.T) {
	f := newFixture(t, 5, 5, 5)
	f.place(2, 2, "fire")
	f.place(2, 3, "wood")
	f.grid.Commit()

	s := f.step()
	if f.idAt(2, 3) != "fire" {
		t.Fatalf("(2,3) = %q, want fire", f.idAt(2, 3))
	}
	if s.Reactions[registry.Paint] != 1 {
		t.Fatalf("paint count = %d", s.Reactions[registry.Paint])
	}
}

func TestWaterConsumesFire(t *testing.T) {
	cases := []struct {
		name        string
		top, bottom string
	}{
		{"water above fire", "water", "fire"},
		{"fire above water", "fire", "water"},
	}
	for _, c := range cases {
		f := newFixture(t, 5, 5, 2)
		f.place(2, 2, c.top)
		f.place(2, 3, c.bottom)
		f.grid.Commit()

		s := f.step()
		if s.Reactions[registry.Consume] != 1 {
			t.Fatalf("%s: consume count = %d", c.name, s.Reactions[registry.Consume])
		}
		if f.grid.Filled() != 1 {
			t.Fatalf("%s: filled = %d, want 1", c.name, f.grid.Filled())
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				if id := f.idAt(x, y); id != "" && id != "water" {
					t.Fatalf("%s: survivor is %q, want water", c.name, id)
				}
			}
		}
	}
}

func TestGranularSinksThroughFluid(t *testing.T) {
	f := newFixture(t, 3, 4, 8)
	// A walled shaft: wet sand has no rule with water, so only priority
	// decides who ends up below.
	f.place(1, 1, "wet")
	f.place(1, 2, "water")
	for _, c := range [][2]int{{0, 1}, {2, 1}, {0, 2}, {2, 2}, {0, 3}, {1, 3}, {2, 3}} {
		f.place(c[0], c[1], "rock")
	}
	f.grid.Commit()

	f.step()
	if f.idAt(1, 2) != "wet" || f.idAt(1, 1) != "water" {
		t.Fatalf("wet sand should swap below water")
	}
}

func TestStickOnlySlidesOnOwnKind(t *testing.T) {
	f := newFixture(t, 5, 3, 6)
	f.place(2, 1, "glue")
	f.place(2, 2, "rock")
	f.grid.Commit()
	for i := 0; i < 10; i++ {
		f.step()
	}
	if f.idAt(2, 1) != "glue" {
		t.Fatalf("stick particle slid off a different kind")
	}
}

func TestGasDecayPrecedesReactions(t *testing.T) {
	const seed = 12
	f := newFixture(t, 3, 3, seed)
	f.place(1, 1, "spark")
	f.place(1, 2, "wood")
	f.grid.Commit()

	s := f.step()
	if s.Decayed != 1 || s.Reactions[registry.Paint] != 0 {
		t.Fatalf("decayed = %d paints = %d, want 1 and 0", s.Decayed, s.Reactions[registry.Paint])
	}
	if f.idAt(1, 2) != "wood" || f.grid.Filled() != 1 {
		t.Fatalf("spent gas painted its neighbor: (1,2) = %q", f.idAt(1, 2))
	}
	// The spent gas returns before any roll, and solids draw nothing.
	if got, want := f.eng.rng.IntN(1<<30), core.NewRNG(seed).IntN(1<<30); got != want {
		t.Fatalf("tick consumed random draws: next = %d, fresh = %d", got, want)
	}
}

func TestHorizontalDisplacement(t *testing.T) {
	t.Run("swaps with a lower priority side", func(t *testing.T) {
		f := newFixture(t, 3, 3, 1)
		f.place(0, 2, "lead")
		f.place(1, 2, "water")
		f.grid.Commit()
		f.step()
		if f.idAt(1, 2) != "lead" || f.idAt(0, 2) != "water" {
			t.Fatalf("row = %q %q %q", f.idAt(0, 2), f.idAt(1, 2), f.idAt(2, 2))
		}
	})

	t.Run("refused when the side cannot be pushed", func(t *testing.T) {
		f := newFixture(t, 3, 3, 1)
		f.place(0, 2, "lead")
		f.place(1, 2, "wet")
		f.grid.Commit()
		for i := 0; i < 5; i++ {
			f.step()
		}
		if f.idAt(0, 2) != "lead" || f.idAt(1, 2) != "wet" {
			t.Fatalf("row = %q %q %q", f.idAt(0, 2), f.idAt(1, 2), f.idAt(2, 2))
		}
	})

	t.Run("coin picks the side", func(t *testing.T) {
		seen := map[int]bool{}
		for seed := int64(1); seed <= 32; seed++ {
			f := newFixture(t, 3, 3, seed)
			f.place(0, 2, "water")
			f.place(1, 2, "lead")
			f.place(2, 2, "water")
			f.grid.Commit()
			f.step()
			if f.idAt(1, 2) != "water" || f.grid.Filled() != 3 {
				t.Fatalf("seed %d: lead did not swap exactly once", seed)
			}
			for _, x := range []int{0, 2} {
				if f.idAt(x, 2) == "lead" {
					seen[x] = true
				}
			}
		}
		if !seen[0] || !seen[2] {
			t.Fatalf("sides taken = %v, want both", seen)
		}
	})
}

func TestSlipSlideNeedsClearFloor(t *testing.T) {
	cases := []struct {
		name  string
		rocks []int
		wantX int
	}{
		{"slides left", []int{2, 3}, 1},
		{"slides right", []int{1, 2}, 3},
		{"both floors taken", []int{1, 2, 3}, 2},
	}
	for _, c := range cases {
		f := newFixture(t, 5, 3, 3)
		f.place(2, 1, "sand")
		for _, x := range c.rocks {
			f.place(x, 2, "rock")
		}
		f.grid.Commit()
		f.step()
		if f.idAt(c.wantX, 1) != "sand" {
			t.Fatalf("%s: sand not at (%d,1)", c.name, c.wantX)
		}
	}
}

func TestFluidSpreadsOnBottomRowByCoin(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(1); seed <= 64; seed++ {
		f := newFixture(t, 5, 3, seed)
		f.place(2, 2, "water")
		f.place(2, 0, "acid")
		f.grid.Commit()
		f.step()
		if f.idAt(2, 1) != "acid" {
			t.Fatalf("seed %d: falling fluid spread instead of falling", seed)
		}
		for x := 1; x <= 3; x++ {
			if f.idAt(x, 2) == "water" {
				seen[x] = true
			}
		}
	}
	for x := 1; x <= 3; x++ {
		if !seen[x] {
			t.Fatalf("water never ended at x=%d, seen = %v", x, seen)
		}
	}
}

func TestPaintLetsPainterMove(t *testing.T) {
	f := newFixture(t, 3, 3, 5)
	f.place(0, 0, "wood")
	f.place(1, 0, "acid")
	f.grid.Commit()

	s := f.step()
	if s.Reactions[registry.Paint] != 1 {
		t.Fatalf("paint count = %d", s.Reactions[registry.Paint])
	}
	if f.idAt(0, 0) != "acid" || f.idAt(1, 1) != "acid" || f.idAt(1, 0) != "" {
		t.Fatalf("cells = %q %q %q", f.idAt(0, 0), f.idAt(1, 0), f.idAt(1, 1))
	}
}

func TestGasRiseBlockedAbove(t *testing.T) {
	f := newFixture(t, 3, 3, 2)
	f.place(1, 2, "vapor")
	f.place(1, 1, "rock")
	f.place(0, 2, "vapor")
	f.grid.Commit()

	f.step()
	if f.idAt(1, 2) != "vapor" {
		t.Fatalf("covered vapor moved")
	}
	if f.idAt(0, 1) != "vapor" || f.idAt(0, 2) != "" {
		t.Fatalf("open vapor did not rise")
	}
}

func TestRainbowRecolors(t *testing.T) {
	f := newFixture(t, 3, 3, 21)
	rock := f.place(1, 2, "rock")
	f.grid.Commit()

	f.step()
	if rock.Color != rock.OriginalColor {
		t.Fatalf("color changed with rainbow off")
	}
	f.eng.SetRainbow(true)
	f.step()
	painted := rock.Color
	if !f.eng.Rainbow() || painted == rock.OriginalColor || painted > 0xffffff {
		t.Fatalf("rainbow color = %06x", uint32(painted))
	}
	if f.grid.StableAt(1, 2).Color != painted {
		t.Fatalf("commit did not publish the new color")
	}
	f.eng.SetRainbow(false)
	f.step()
	if rock.Color != painted {
		t.Fatalf("color changed after rainbow was turned off")
	}
}

func TestSameSeedReplays(t *testing.T) {
	build := func() *fixture {
		f := newFixture(t, 12, 10, 77)
		for x := 0; x < 12; x++ {
			f.place(x, 9, "rock")
		}
		for x := 2; x < 10; x++ {
			f.place(x, 0, "sand")
			f.place(x, 2, "water")
		}
		f.place(6, 5, "fire")
		f.grid.Commit()
		return f
	}
	a, b := build(), build()
	for i := 0; i < 40; i++ {
		a.step()
		b.step()
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			if a.idAt(x, y) != b.idAt(x, y) {
				t.Fatalf("cell (%d,%d) diverged: %q vs %q", x, y, a.idAt(x, y), b.idAt(x, y))
			}
		}
	}
}

func TestClampEdgePolicy(t *testing.T) {
	f := newFixture(t, 6, 4, 1)
	cases := []struct{ x, y, wx, wy int }{
		{6, 1, 4, 1},
		{-1, 1, 0, 1},
		{2, 4, 2, 4},
		{2, -3, 2, 0},
		{3, 2, 3, 2},
	}
	for _, c := range cases {
		if x, y := f.eng.clamp(c.x, c.y); x != c.wx || y != c.wy {
			t.Fatalf("clamp(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
}

func TestStatsCountProcessed(t *testing.T) {
	f := newFixture(t, 4, 4, 1)
	f.place(0, 3, "rock")
	f.place(1, 3, "rock")
	f.grid.Commit()
	s := f.step()
	if s.Tick != 1 || s.Processed != 2 || f.eng.Ticks() != 1 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestSetTimeStepDefault(t *testing.T) {
	f := newFixture(t, 2, 2, 1)
	f.eng.SetTimeStep(-1)
	if f.eng.dt != DefaultTimeStep {
		t.Fatalf("dt = %v", f.eng.dt)
	}
}
