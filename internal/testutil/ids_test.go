package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/annotizer/internal/ident"
)

func TestSequentialGenerator(t *testing.T) {
	gen := NewSequentialGenerator()

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", gen.Generate().String())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", gen.Generate().String())

	gen.Reset()
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", gen.Generate().String())
}

func TestSequentialGenerator_Deterministic(t *testing.T) {
	a, b := NewSequentialGenerator(), NewSequentialGenerator()
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestSequentialID(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-0000000000ff", SequentialID(255).String())
}

func TestFixedGenerator(t *testing.T) {
	id := ident.MustParse("e7a1c3b4-0f6d-4a55-9c1e-2b8d7f3a9e10")
	gen := NewFixedGenerator(id)

	assert.Equal(t, id, gen.Generate())
	assert.Equal(t, id, gen.Generate())
}
