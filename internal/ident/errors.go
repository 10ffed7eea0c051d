package ident

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifierFormat is the sentinel matched by every identifier
// construction failure.
var ErrInvalidIdentifierFormat = errors.New("INVALID_IDENTIFIER_FORMAT")

var (
	errNilValue        = errors.New("nil identifier pointer")
	errUnsupportedType = errors.New("unsupported identifier type")
)

// FormatError reports input that is not a well-formed 128-bit identifier.
type FormatError struct {
	// Input is the rejected value (or its type name for non-string input).
	Input string

	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrInvalidIdentifierFormat, e.Input, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidIdentifierFormat) succeed.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidIdentifierFormat
}

// IsFormatError returns true if err is an identifier format error.
// Uses errors.As to handle wrapped errors.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
