package signature

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode categorizes resolution failures.
type ErrorCode string

const (
	// ErrCodeNotAFunc indicates the value is not a non-nil function.
	ErrCodeNotAFunc ErrorCode = "NOT_A_FUNC"

	// ErrCodeNoSource indicates the declaring source file is unavailable.
	ErrCodeNoSource ErrorCode = "NO_SOURCE"

	// ErrCodeNotFound indicates no provider knows the callable.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidName indicates a declared name is not a Go identifier.
	ErrCodeInvalidName ErrorCode = "INVALID_NAME"

	// ErrCodeArityMismatch indicates registered names disagree with the
	// function's type.
	ErrCodeArityMismatch ErrorCode = "ARITY_MISMATCH"

	// ErrCodeAmbiguous indicates several declarations fit the same
	// function entry and none can be preferred.
	ErrCodeAmbiguous ErrorCode = "AMBIGUOUS"

	// ErrCodeDeclaration indicates a malformed CUE declaration.
	ErrCodeDeclaration ErrorCode = "INVALID_DECLARATION"
)

// ResolveError reports a failure to obtain a callable's signature.
type ResolveError struct {
	Code    ErrorCode
	Func    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Func != "" {
		msg = fmt.Sprintf("%s (func=%s)", msg, e.Func)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode of a *ResolveError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsNotFound returns true if err reports an unknown callable.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func quote(s string) string {
	return strconv.Quote(s)
}
