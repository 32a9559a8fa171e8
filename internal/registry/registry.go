// Package registry maps material identifiers to particle prototypes and to
// the pairwise relationships between them.
package registry

import (
	"fmt"

	"powder/internal/core"
	"powder/internal/logging"
	"powder/internal/particle"
)

// Entry describes one registered material.
type Entry struct {
	ID    string
	Label string
	Kind  particle.Kind
	Color particle.Color
	Shift particle.ShiftRule
}

type pairKey struct{ lo, hi particle.Kind }

func keyOf(a, b particle.Kind) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Registry stores prototypes as templates and hands out fresh instances.
// Kinds are assigned densely from 1 in registration order, so the reverse
// lookup is a slice index.
type Registry struct {
	log logging.Logger

	byID      map[string]particle.Kind
	ids       []string // indexed by kind; ids[0] is unused
	labels    []string
	templates []particle.Template

	rules map[pairKey]Relationship
}

// New constructs an empty registry.
func New(log logging.Logger) *Registry {
	if log == nil {
		log = logging.Noop()
	}
	return &Registry{
		log:       log.With(logging.String("component", "registry")),
		byID:      map[string]particle.Kind{},
		ids:       []string{""},
		labels:    []string{""},
		templates: []particle.Template{{}},
		rules:     map[pairKey]Relationship{},
	}
}

// Register stores a template of proto under id, labelled with the id itself.
func (r *Registry) Register(id string, proto *particle.Particle) error {
	return r.RegisterNamed(id, id, proto)
}

// RegisterNamed stores a template of proto under id with a display label.
// Duplicate ids are rejected rather than overwritten.
func (r *Registry) RegisterNamed(id, label string, proto *particle.Particle) error {
	if id == "" {
		return fmt.Errorf("register: empty identifier: %w", core.ErrInvalidArgument)
	}
	if proto == nil {
		return fmt.Errorf("register %q: nil prototype: %w", id, core.ErrInvalidArgument)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("register %q: already registered: %w", id, core.ErrInvalidArgument)
	}
	kind := particle.Kind(len(r.ids))
	if int(kind) != len(r.ids) {
		return fmt.Errorf("register %q: kind space exhausted: %w", id, core.ErrInvalidArgument)
	}
	if label == "" {
		label = id
	}
	r.byID[id] = kind
	r.ids = append(r.ids, id)
	r.labels = append(r.labels, label)
	r.templates = append(r.templates, proto.ToTemplate().WithKind(kind))
	r.log.Debug("registered material",
		logging.String("id", id),
		logging.Int("kind", int(kind)),
		logging.String("shift", proto.Shift.String()))
	return nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// KindOf resolves an identifier to its kind.
func (r *Registry) KindOf(id string) (particle.Kind, error) {
	kind, ok := r.byID[id]
	if !ok {
		return 0, fmt.Errorf("material %q: %w", id, core.ErrNotFound)
	}
	return kind, nil
}

// CreateInstance returns a new particle cloned from the template under id.
func (r *Registry) CreateInstance(id string) (*particle.Particle, error) {
	kind, err := r.KindOf(id)
	if err != nil {
		return nil, err
	}
	return particle.FromTemplate(r.templates[kind]), nil
}

// IdentifierOf returns the identifier of the prototype p was cloned from.
func (r *Registry) IdentifierOf(p *particle.Particle) (string, error) {
	if p == nil {
		return "", fmt.Errorf("identifier of nil particle: %w", core.ErrNotFound)
	}
	id := r.idOfKind(p.Kind)
	if id == "" {
		return "", fmt.Errorf("kind %d: %w", p.Kind, core.ErrNotFound)
	}
	return id, nil
}

func (r *Registry) idOfKind(k particle.Kind) string {
	if k == 0 || int(k) >= len(r.ids) {
		return ""
	}
	return r.ids[k]
}

// RegisterRelationship adds a symmetric rule. All three identifiers must
// already be registered; on failure the rule table is left unchanged.
func (r *Registry) RegisterRelationship(a, b, out string, kind RelationshipKind) error {
	for _, id := range [...]string{a, b, out} {
		if !r.Has(id) {
			return fmt.Errorf("relationship %s(%q, %q -> %q): unknown material %q: %w",
				kind, a, b, out, id, core.ErrInvalidArgument)
		}
	}
	if kind > Paint {
		return fmt.Errorf("relationship (%q, %q): unsupported %s: %w", a, b, kind, core.ErrInvalidArgument)
	}
	key := keyOf(r.byID[a], r.byID[b])
	if existing, ok := r.rules[key]; ok {
		return fmt.Errorf("relationship (%q, %q): already registered as %s: %w",
			a, b, existing.Kind, core.ErrInvalidArgument)
	}
	r.rules[key] = Relationship{A: a, B: b, Out: out, Kind: kind}
	r.log.Debug("registered relationship",
		logging.String("a", a),
		logging.String("b", b),
		logging.String("out", out),
		logging.String("kind", kind.String()))
	return nil
}

// HasRelationship reports whether a rule exists for the unordered pair.
func (r *Registry) HasRelationship(a, b string) bool {
	_, err := r.RelationshipOf(a, b)
	return err == nil
}

// RelationshipOf returns the rule for the unordered pair (a, b).
func (r *Registry) RelationshipOf(a, b string) (Relationship, error) {
	ka, okA := r.byID[a]
	kb, okB := r.byID[b]
	if okA && okB {
		if rule, ok := r.rules[keyOf(ka, kb)]; ok {
			return rule, nil
		}
	}
	return Relationship{}, fmt.Errorf("relationship (%q, %q): %w", a, b, core.ErrNotFound)
}

// Between is the kind-keyed lookup used on the tick hot path.
func (r *Registry) Between(a, b *particle.Particle) (Relationship, bool) {
	if a == nil || b == nil {
		return Relationship{}, false
	}
	rule, ok := r.rules[keyOf(a.Kind, b.Kind)]
	return rule, ok
}

// SameKind reports whether two particles come from the same prototype.
func SameKind(a, b *particle.Particle) bool {
	return a != nil && b != nil && a.Kind == b.Kind
}

// Relationships returns the number of registered rules.
func (r *Registry) Relationships() int { return len(r.rules) }

// Entries lists registered materials in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.ids)-1)
	for k := 1; k < len(r.ids); k++ {
		t := r.templates[k]
		out = append(out, Entry{
			ID:    r.ids[k],
			Label: r.labels[k],
			Kind:  particle.Kind(k),
			Color: t.Color(),
			Shift: t.Shift(),
		})
	}
	return out
}
