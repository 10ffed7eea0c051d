package ident

import "github.com/google/uuid"

// Generator produces fresh identifiers.
type Generator interface {
	Generate() ID
}

// RandomGenerator produces random (version 4) identifiers.
//
// Thread-safety: RandomGenerator is stateless and safe for concurrent use.
type RandomGenerator struct{}

// Generate returns a new random identifier.
func (RandomGenerator) Generate() ID {
	return ID{u: uuid.New()}
}

// TimeOrderedGenerator produces time-sortable (version 7) identifiers.
//
// Panics if generation fails, which only happens when the system's random
// source is broken.
type TimeOrderedGenerator struct{}

// Generate returns a new time-ordered identifier.
func (TimeOrderedGenerator) Generate() ID {
	return ID{u: uuid.Must(uuid.NewV7())}
}

// New returns a random identifier.
func New() ID {
	return RandomGenerator{}.Generate()
}
