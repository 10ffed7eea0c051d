package ident

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func TestParse_AcceptedForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"hyphenated", canonical},
		{"uppercase", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"},
		{"urn", "urn:uuid:" + canonical},
		{"braces", "{" + canonical + "}"},
		{"bare hex", "6ba7b8109dad11d180b400c04fd430c8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		"not-a-uuid",
		"",
		"6ba7b810-9dad-11d1-80b4",
		"6ba7b810-9dad-11d1-80b4-00c04fd430cz",
		" " + canonical,
	}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifierFormat))
			assert.True(t, IsFormatError(err))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, input, fe.Input)
		})
	}
}

func TestFormatError_Wrapped(t *testing.T) {
	_, err := Parse("not-a-uuid")
	wrapped := fmt.Errorf("constructing namespace: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidIdentifierFormat))
	assert.True(t, IsFormatError(wrapped))
	assert.Contains(t, wrapped.Error(), "INVALID_IDENTIFIER_FORMAT")
	assert.False(t, IsFormatError(errors.New("other")))
}

func TestEquality(t *testing.T) {
	a := MustParse(canonical)
	b := MustParse("urn:uuid:" + canonical)
	c := New()

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, c)

	m := map[ID]string{a: "first"}
	m[b] = "second"
	assert.Len(t, m, 1)
	assert.Equal(t, "second", m[a])
}

func TestFrom(t *testing.T) {
	u := uuid.MustParse(canonical)
	want := FromUUID(u)

	tests := []struct {
		name  string
		input any
	}{
		{"ID", want},
		{"pointer", &want},
		{"uuid", u},
		{"bytes", [16]byte(u)},
		{"string", canonical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFrom_Unsupported(t *testing.T) {
	for _, input := range []any{42, nil, (*ID)(nil), "not-a-uuid"} {
		_, err := From(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIdentifierFormat)
	}
}

func TestNilIdentifier(t *testing.T) {
	id, err := Parse("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.True(t, id.IsNil())
	assert.Equal(t, Nil, id)
	assert.False(t, New().IsNil())
}

func TestCompare(t *testing.T) {
	a := MustParse("00000000-0000-0000-0000-000000000001")
	b := MustParse("00000000-0000-0000-0000-000000000002")

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestTextRoundTrip(t *testing.T) {
	id := MustParse(canonical)
	text, err := id.MarshalText()
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)

	assert.Error(t, decoded.UnmarshalText([]byte("bogus")))
}

func TestGenerators(t *testing.T) {
	r := RandomGenerator{}.Generate()
	assert.Equal(t, uuid.Version(4), r.UUID().Version())

	v7 := TimeOrderedGenerator{}.Generate()
	assert.Equal(t, uuid.Version(7), v7.UUID().Version())

	assert.NotEqual(t, New(), New())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-uuid") })
}
