package annotate

import (
	"github.com/roach88/annotizer/internal/metadata"
	"github.com/roach88/annotizer/internal/signature"
)

// Target is anything decorators can write metadata onto.
type Target interface {
	// Signature returns the declared parameter names. Decorators call it
	// once per application; it must not invoke the callable.
	Signature() signature.View

	// Annotations returns the target's metadata store. Every call returns
	// the same store.
	Annotations() *metadata.Store
}

// Signatures is the package-level explicit signature registry consulted
// before source analysis when Wrap is given a nil provider.
var Signatures = signature.NewRegistry()

var defaultProvider signature.Provider = signature.Chain{Signatures, signature.NewSource()}

// DefaultProvider returns the provider used when none is given.
func DefaultProvider() signature.Provider {
	return defaultProvider
}

// Func is a function handle that owns its metadata store.
type Func[F any] struct {
	// Fn is the wrapped function, callable as usual.
	Fn F

	sig  signature.View
	meta metadata.Store
}

// Wrap resolves fn's signature with p (DefaultProvider when nil) and returns
// a handle with an empty store.
func Wrap[F any](fn F, p signature.Provider) (*Func[F], error) {
	if p == nil {
		p = defaultProvider
	}
	view, err := p.Signature(fn)
	if err != nil {
		return nil, err
	}
	f := &Func[F]{Fn: fn, sig: view}
	f.meta.SetOrder(view.Params)
	return f, nil
}

// MustWrap is like Wrap but panics on error.
func MustWrap[F any](fn F, p signature.Provider) *Func[F] {
	f, err := Wrap(fn, p)
	if err != nil {
		panic(err)
	}
	return f
}

// Signature implements Target.
func (f *Func[F]) Signature() signature.View {
	return f.sig
}

// Annotations implements Target.
func (f *Func[F]) Annotations() *metadata.Store {
	return &f.meta
}

// Declared is a target described only by its signature.
type Declared struct {
	sig  signature.View
	meta metadata.Store
}

// Declare returns a target for view.
func Declare(view signature.View) *Declared {
	d := &Declared{sig: view}
	d.meta.SetOrder(view.Params)
	return d
}

// Signature implements Target.
func (d *Declared) Signature() signature.View {
	return d.sig
}

// Annotations implements Target.
func (d *Declared) Annotations() *metadata.Store {
	return &d.meta
}
