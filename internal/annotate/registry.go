package annotate

import (
	"sync"

	"github.com/roach88/annotizer/internal/metadata"
	"github.com/roach88/annotizer/internal/signature"
)

// Registry is a side table of metadata stores keyed by function identity.
//
// Identity is the function's code pointer: every closure created from the
// same function literal shares one entry. Entries are created on first
// access and live as long as the registry.
//
// The index is safe for concurrent use. The stores it hands out are not;
// see the package documentation.
type Registry struct {
	mu       sync.Mutex
	provider signature.Provider
	entries  map[uintptr]*entry
}

type entry struct {
	sig  signature.View
	meta metadata.Store
}

func (e *entry) Signature() signature.View    { return e.sig }
func (e *entry) Annotations() *metadata.Store { return &e.meta }

// DefaultRegistry is the process-wide side table used by Annotate and
// AnnotationsOf.
var DefaultRegistry = NewRegistry(nil)

// NewRegistry returns an empty registry resolving signatures with p
// (DefaultProvider when nil).
func NewRegistry(p signature.Provider) *Registry {
	if p == nil {
		p = defaultProvider
	}
	return &Registry{
		provider: p,
		entries:  make(map[uintptr]*entry),
	}
}

// Target returns the entry for fn, creating it on first access. The
// signature is resolved once, when the entry is created.
func (r *Registry) Target(fn any) (Target, error) {
	pc, err := signature.CodePointer(fn)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[pc]; ok {
		return e, nil
	}
	view, err := r.provider.Signature(fn)
	if err != nil {
		return nil, err
	}
	e := &entry{sig: view}
	e.meta.SetOrder(view.Params)
	r.entries[pc] = e
	return e, nil
}

// Apply decorates fn's entry with ds, in order.
func (r *Registry) Apply(fn any, ds ...Decorator) error {
	t, err := r.Target(fn)
	if err != nil {
		return err
	}
	Decorate(t, ds...)
	return nil
}

// Annotations returns fn's store if fn has an entry.
func (r *Registry) Annotations(fn any) (*metadata.Store, bool) {
	pc, err := signature.CodePointer(fn)
	if err != nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[pc]
	if !ok {
		return nil, false
	}
	return &e.meta, true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Annotate decorates fn through DefaultRegistry.
func Annotate(fn any, ds ...Decorator) error {
	return DefaultRegistry.Apply(fn, ds...)
}

// AnnotationsOf returns fn's store from DefaultRegistry.
func AnnotationsOf(fn any) (*metadata.Store, bool) {
	return DefaultRegistry.Annotations(fn)
}
