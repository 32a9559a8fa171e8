package core

import "errors"

var (
	// ErrOutOfBounds reports a caller-supplied coordinate outside the grid.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrNotFound reports an unregistered identifier or particle kind.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument reports a registration that references unknown or
	// duplicate identifiers.
	ErrInvalidArgument = errors.New("invalid argument")
)
