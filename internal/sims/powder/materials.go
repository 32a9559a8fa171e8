package powder

import (
	"powder/internal/particle"
	"powder/internal/registry"
)

// Material identifiers of the default set.
const (
	Sand     = "sand_powder"
	WetSand  = "wet_sand_powder"
	Rock     = "rock_powder"
	Water    = "water_fluid"
	Wood     = "wood_powder"
	Fire     = "fire_gas"
	Hydrogen = "hydrogen_fluid"
)

type material struct {
	id, label string
	proto     func() *particle.Particle
}

var defaultMaterials = []material{
	{Sand, "Sand", func() *particle.Particle {
		return particle.New(particle.Slip, 2, particle.RGB(246, 225, 176), 0)
	}},
	{WetSand, "Moist Sand", func() *particle.Particle {
		p := particle.New(particle.Slip, 2, particle.RGB(149, 116, 73), 0)
		p.CanDisplaceHorizontally = false
		return p
	}},
	{Rock, "Rock", func() *particle.Particle {
		return particle.New(particle.Solid, particle.Immovable, particle.RGB(61, 59, 60), 0)
	}},
	{Water, "Water", func() *particle.Particle {
		return particle.New(particle.Fluid, 0, particle.RGB(35, 95, 230), 0)
	}},
	{Wood, "Wood", func() *particle.Particle {
		p := particle.New(particle.Solid, particle.Immovable, particle.RGB(225, 145, 39), 0)
		p.CanDisplaceHorizontally = false
		p.CanDisplaceVertically = false
		return p
	}},
	{Fire, "Fire", func() *particle.Particle {
		p := particle.New(particle.Gas, 1, particle.RGB(242, 78, 13), 255)
		p.Gas.FloatNeeded = 80
		p.Gas.ShiftNeeded = 95
		p.Gas.SinkNeeded = 100
		return p
	}},
	{Hydrogen, "Hydrogen", func() *particle.Particle {
		return particle.New(particle.Fluid, -2, particle.RGB(152, 245, 249), 0)
	}},
}

var defaultRelationships = []registry.Relationship{
	{A: Sand, B: Water, Out: WetSand, Kind: registry.Merge},
	{A: Fire, B: Wood, Out: Fire, Kind: registry.Paint},
	{A: Water, B: Fire, Out: Water, Kind: registry.Consume},
	{A: Fire, B: Hydrogen, Out: Fire, Kind: registry.Paint},
}

// RegisterDefaults adds the built-in materials and their relationships.
func RegisterDefaults(reg *registry.Registry) error {
	for _, m := range defaultMaterials {
		if err := reg.RegisterNamed(m.id, m.label, m.proto()); err != nil {
			return err
		}
	}
	for _, r := range defaultRelationships {
		if err := reg.RegisterRelationship(r.A, r.B, r.Out, r.Kind); err != nil {
			return err
		}
	}
	return nil
}
