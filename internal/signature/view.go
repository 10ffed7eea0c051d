package signature

import (
	"go/token"
	"slices"
)

// View is the ordered set of declared parameter names of a callable.
type View struct {
	// Name identifies the callable (fully qualified for Go functions).
	Name string `json:"name"`

	// Params lists the declared parameter names in order.
	// Blank and unnamed parameters are omitted.
	Params []string `json:"params"`

	// Results is the number of declared results.
	Results int `json:"results"`

	// Variadic reports whether the final parameter is variadic.
	Variadic bool `json:"variadic,omitempty"`
}

// Has reports whether name is a declared parameter.
func (v View) Has(name string) bool {
	return slices.Contains(v.Params, name)
}

// Index returns the position of name in Params, or -1.
func (v View) Index(name string) int {
	return slices.Index(v.Params, name)
}

// Validate checks that every parameter name is a usable Go identifier and
// that no name repeats.
func (v View) Validate() error {
	seen := make(map[string]bool, len(v.Params))
	for _, p := range v.Params {
		if !token.IsIdentifier(p) || p == "_" {
			return &ResolveError{
				Code:    ErrCodeInvalidName,
				Func:    v.Name,
				Message: "parameter name " + quote(p) + " is not a Go identifier",
			}
		}
		if seen[p] {
			return &ResolveError{
				Code:    ErrCodeInvalidName,
				Func:    v.Name,
				Message: "duplicate parameter name " + quote(p),
			}
		}
		seen[p] = true
	}
	if v.Results < 0 {
		return &ResolveError{
			Code:    ErrCodeInvalidName,
			Func:    v.Name,
			Message: "negative result count",
		}
	}
	return nil
}

// Provider resolves the signature of a callable without calling it.
type Provider interface {
	Signature(fn any) (View, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(fn any) (View, error)

// Signature calls f(fn).
func (f ProviderFunc) Signature(fn any) (View, error) {
	return f(fn)
}
