package testutil

import (
	"fmt"

	"github.com/roach88/annotizer/internal/ident"
)

// SequentialGenerator hands out identifiers whose last 48 bits count up from
// 1: 00000000-0000-0000-0000-000000000001, ...002, and so on.
//
// Two generators created the same way produce the same identifiers, which
// keeps golden files stable.
type SequentialGenerator struct {
	seq *Sequence
}

// NewSequentialGenerator returns a generator starting at ...001.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{seq: NewSequence()}
}

// Generate implements ident.Generator.
func (g *SequentialGenerator) Generate() ident.ID {
	return SequentialID(g.seq.Next())
}

// Reset restarts the generator at ...001.
func (g *SequentialGenerator) Reset() {
	g.seq.Reset()
}

// SequentialID returns the n-th identifier SequentialGenerator produces.
func SequentialID(n int64) ident.ID {
	return ident.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012x", n))
}

// FixedGenerator returns the same identifier every time.
//
// Thread-safety: FixedGenerator is immutable and safe for concurrent use.
type FixedGenerator struct {
	id ident.ID
}

// NewFixedGenerator returns a generator for id.
func NewFixedGenerator(id ident.ID) *FixedGenerator {
	return &FixedGenerator{id: id}
}

// Generate implements ident.Generator.
func (g *FixedGenerator) Generate() ident.ID {
	return g.id
}

var (
	_ ident.Generator = (*SequentialGenerator)(nil)
	_ ident.Generator = (*FixedGenerator)(nil)
)
