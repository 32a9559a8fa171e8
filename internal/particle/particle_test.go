package particle

import "testing"

func TestColorChannels(t *testing.T) {
	c := RGB(12, 34, 56)
	r, g, b := c.Channels()
	if r != 12 || g != 34 || b != 56 {
		t.Fatalf("channels = %d,%d,%d", r, g, b)
	}
	if inv := c.Invert(); inv != RGB(243, 221, 199) {
		t.Fatalf("invert = %06x", uint32(inv))
	}
	if rgba := c.RGBA(); rgba.R != 12 || rgba.G != 34 || rgba.B != 56 || rgba.A != 255 {
		t.Fatalf("rgba = %+v", rgba)
	}
}

func TestColorScale(t *testing.T) {
	c := RGB(200, 100, 50)
	if got := c.Scale(0.5); got != RGB(100, 50, 25) {
		t.Fatalf("scale 0.5 = %06x", uint32(got))
	}
	if c.Scale(0) != 0 || c.Scale(-1) != 0 {
		t.Fatalf("non-positive scale should be black")
	}
	if c.Scale(1.5) != c {
		t.Fatalf("scale above one should keep the color")
	}
}

func TestNewSetsDefaults(t *testing.T) {
	p := New(Slip, 2, RGB(1, 2, 3), 0)
	if !p.CanDisplaceHorizontally || !p.CanDisplaceVertically {
		t.Fatalf("displacement flags should default on")
	}
	if p.OriginalColor != p.Color {
		t.Fatalf("original color not recorded")
	}
	if p.Gas != (GasTraits{}) {
		t.Fatalf("non-gas particle carries gas traits")
	}

	g := New(Gas, 1, RGB(9, 9, 9), 10)
	if g.Gas != DefaultGasTraits() {
		t.Fatalf("gas traits = %+v", g.Gas)
	}
	if g.OriginalLife != 10 {
		t.Fatalf("original life = %d", g.OriginalLife)
	}
}

func TestNextVelocityIsUnitStep(t *testing.T) {
	p := New(Slip, 0, 0, 0)
	for _, dt := range []float32{0, 0.5, 3, 100} {
		p.NextVelocity(dt)
		if p.Velocity != 1 {
			t.Fatalf("velocity after dt=%v is %v, want 1", dt, p.Velocity)
		}
	}
}

func TestDecay(t *testing.T) {
	p := New(Gas, 1, RGB(200, 100, 40), 4)
	if p.Decay() {
		t.Fatalf("decay spent the particle too early")
	}
	if p.Life != 3 {
		t.Fatalf("life = %d, want 3", p.Life)
	}
	if want := RGB(200, 100, 40).Scale(0.75); p.Color != want {
		t.Fatalf("color = %06x, want %06x", uint32(p.Color), uint32(want))
	}
	p.Decay()
	p.Decay()
	if !p.Decay() {
		t.Fatalf("fourth decay should spend a life of 4")
	}
	if p.Life != 0 {
		t.Fatalf("life = %d, want 0", p.Life)
	}
}

func TestTemplateInstancesAreIndependent(t *testing.T) {
	proto := New(Gas, 1, RGB(242, 78, 13), 255)
	proto.Gas.FloatNeeded = 80
	proto.X, proto.Y, proto.Velocity, proto.Erased = 7, 8, 3, true

	tpl := proto.ToTemplate().WithKind(5)
	if tpl.Kind() != 5 || tpl.Shift() != Gas || tpl.Priority() != 1 || tpl.Color() != RGB(242, 78, 13) {
		t.Fatalf("template accessors disagree: %+v", tpl)
	}

	a := FromTemplate(tpl)
	b := FromTemplate(tpl)
	if a == b {
		t.Fatalf("instances share storage")
	}
	if a.X != 0 || a.Y != 0 || a.Velocity != 0 || a.Erased {
		t.Fatalf("per-tick state leaked into instance: %+v", a)
	}
	if a.Kind != 5 || a.Gas.FloatNeeded != 80 || a.Life != 255 {
		t.Fatalf("instance lost configuration: %+v", a)
	}

	a.Decay()
	a.Gas.ShiftNeeded = 1
	if b.Life != 255 || b.Gas.ShiftNeeded != proto.Gas.ShiftNeeded {
		t.Fatalf("mutating one instance changed another")
	}
	if FromTemplate(tpl).Life != 255 {
		t.Fatalf("mutating an instance changed the template")
	}
}

func TestShiftRuleString(t *testing.T) {
	if Fluid.String() != "fluid" || ShiftRule(99).String() != "unknown" {
		t.Fatalf("unexpected names %q %q", Fluid, ShiftRule(99))
	}
}
