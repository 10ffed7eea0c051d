package ident

import (
	"strings"

	"github.com/google/uuid"
)

// ID is a project identifier. The zero value is the Nil UUID, which is a
// well-formed identifier like any other.
type ID struct {
	u uuid.UUID
}

// Nil is the all-zero identifier.
var Nil = ID{}

// Parse converts a canonical string representation into an ID.
//
// Accepted forms are the ones uuid.Parse accepts:
//
//	xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//	urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//	{xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//	xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx
//
// Anything else fails with a *FormatError matching ErrInvalidIdentifierFormat.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, &FormatError{Input: s, Err: err}
	}
	return ID{u: u}, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or for identifiers compiled into a program.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// FromUUID wraps an existing uuid.UUID.
func FromUUID(u uuid.UUID) ID {
	return ID{u: u}
}

// From converts any supported representation into an ID.
// Supported: ID, *ID, uuid.UUID, [16]byte and string.
func From(v any) (ID, error) {
	switch val := v.(type) {
	case ID:
		return val, nil
	case *ID:
		if val == nil {
			return Nil, &FormatError{Input: "<nil>", Err: errNilValue}
		}
		return *val, nil
	case uuid.UUID:
		return ID{u: val}, nil
	case [16]byte:
		return ID{u: uuid.UUID(val)}, nil
	case string:
		return Parse(val)
	default:
		return Nil, &FormatError{Input: typeName(v), Err: errUnsupportedType}
	}
}

// UUID returns the underlying uuid.UUID.
func (id ID) UUID() uuid.UUID {
	return id.u
}

// String returns the canonical lowercase hyphenated form.
func (id ID) String() string {
	return id.u.String()
}

// IsNil reports whether id is the all-zero identifier.
func (id ID) IsNil() bool {
	return id.u == uuid.Nil
}

// Compare orders identifiers by their canonical string form.
// Used wherever namespaces need a deterministic iteration order.
func Compare(a, b ID) int {
	return strings.Compare(a.String(), b.String())
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
