package registry

import "fmt"

// RelationshipKind selects how two reacting particles are resolved.
type RelationshipKind uint8

const (
	// Merge removes both particles and leaves one Out in place of the other.
	Merge RelationshipKind = iota
	// Consume keeps whichever side is Out and erases the other.
	Consume
	// Paint turns the other particle into Out, leaving the mover untouched.
	Paint
)

func (k RelationshipKind) String() string {
	switch k {
	case Merge:
		return "merge"
	case Consume:
		return "consume"
	case Paint:
		return "paint"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Relationship is a symmetric pairwise interaction rule.
type Relationship struct {
	A, B string
	Out  string
	Kind RelationshipKind
}
