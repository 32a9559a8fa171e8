// Package particle defines the per-cell occupant of a powder grid.
//
// A particle is a flat value: its behaviour is selected by the Shift tag and
// never by Go type identity. Gas-specific tunables travel in the Gas payload,
// which is ignored for every other shift rule.
package particle

// ShiftRule is the behaviour class governing a particle's default motion.
type ShiftRule uint8

const (
	Solid ShiftRule = iota
	Slip
	Stick
	Fluid
	Gas
)

func (s ShiftRule) String() string {
	switch s {
	case Solid:
		return "solid"
	case Slip:
		return "slip"
	case Stick:
		return "stick"
	case Fluid:
		return "fluid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

// Immovable is the displacement priority of particles that can neither be
// displaced nor displace others.
const Immovable = -1

const (
	gravity          = 9.8
	terminalVelocity = 25
)

// Kind identifies which registry prototype a particle was cloned from. The
// zero Kind belongs to no prototype.
type Kind uint16

// GasTraits holds the thresholds a gas rolls against each tick. A roll in
// [0, max) at or above the needed value triggers the move.
type GasTraits struct {
	FloatNeeded int
	FloatMax    int
	SinkNeeded  int
	SinkMax     int
	ShiftNeeded int
	ShiftMax    int
}

// DefaultGasTraits returns thresholds under which the gas never moves.
func DefaultGasTraits() GasTraits {
	return GasTraits{
		FloatNeeded: 100,
		FloatMax:    100,
		SinkNeeded:  100,
		SinkMax:     100,
		ShiftNeeded: 100,
		ShiftMax:    100,
	}
}

// Particle is one simulated cell occupant.
type Particle struct {
	X, Y int

	Kind     Kind
	Shift    ShiftRule
	Priority int
	Velocity float32

	Color         Color
	OriginalColor Color
	Life          int
	OriginalLife  int

	CanDisplaceHorizontally bool
	CanDisplaceVertically   bool

	// Erased marks a particle that was removed from the grid during the
	// current tick and must not be processed again.
	Erased bool

	Gas GasTraits
}

// New returns a particle with both displacement flags set. Gas particles get
// DefaultGasTraits; adjust them before registering the prototype.
func New(shift ShiftRule, priority int, c Color, life int) *Particle {
	p := &Particle{
		Shift:                   shift,
		Priority:                priority,
		Color:                   c,
		OriginalColor:           c,
		Life:                    life,
		OriginalLife:            life,
		CanDisplaceHorizontally: true,
		CanDisplaceVertically:   true,
	}
	if shift == Gas {
		p.Gas = DefaultGasTraits()
	}
	return p
}

// NextVelocity integrates coarse gravity for dt and caps the result at
// terminal velocity. The fall rate is then pinned to one cell per tick, which
// the movement clamping and displacement rules are tuned against.
func (p *Particle) NextVelocity(dt float32) {
	p.Velocity += float32(int(0.5 * gravity * float64(dt*dt)))
	if p.Velocity > terminalVelocity {
		p.Velocity = terminalVelocity
	}
	p.Velocity = 1
}

// Decay lowers a gas particle's life by one and darkens its color in
// proportion to what remains. It reports whether the particle is spent.
func (p *Particle) Decay() bool {
	p.Life--
	if p.Life <= 0 {
		p.Life = 0
		return true
	}
	if p.OriginalLife > 0 {
		p.Color = p.OriginalColor.Scale(float64(p.Life) / float64(p.OriginalLife))
	}
	return false
}

// Template is the immutable form of a particle stored by a registry. It has
// no position and no per-tick state.
type Template struct {
	kind     Kind
	shift    ShiftRule
	priority int
	color    Color
	life     int

	horizontal bool
	vertical   bool

	gas GasTraits
}

// ToTemplate captures the configuration of p. Position, velocity and erase
// state are dropped; the current color and life become the originals.
func (p *Particle) ToTemplate() Template {
	return Template{
		kind:       p.Kind,
		shift:      p.Shift,
		priority:   p.Priority,
		color:      p.Color,
		life:       p.Life,
		horizontal: p.CanDisplaceHorizontally,
		vertical:   p.CanDisplaceVertically,
		gas:        p.Gas,
	}
}

// WithKind returns a copy of t stamped with kind k.
func (t Template) WithKind(k Kind) Template {
	t.kind = k
	return t
}

// Kind returns the kind stamped on the template.
func (t Template) Kind() Kind { return t.kind }

// Shift returns the template's shift rule.
func (t Template) Shift() ShiftRule { return t.shift }

// Color returns the template's base color.
func (t Template) Color() Color { return t.color }

// Priority returns the template's displacement priority.
func (t Template) Priority() int { return t.priority }

// FromTemplate builds a fresh particle owning all of its mutable state.
func FromTemplate(t Template) *Particle {
	return &Particle{
		Kind:                    t.kind,
		Shift:                   t.shift,
		Priority:                t.priority,
		Color:                   t.color,
		OriginalColor:           t.color,
		Life:                    t.life,
		OriginalLife:            t.life,
		CanDisplaceHorizontally: t.horizontal,
		CanDisplaceVertically:   t.vertical,
		Gas:                     t.gas,
	}
}
