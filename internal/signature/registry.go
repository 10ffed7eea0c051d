package signature

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds explicitly registered signatures.
//
// Go functions are keyed by code pointer; declared (non-Go) callables are
// keyed by name. Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byCode map[uintptr]View
	byName map[string]View
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[uintptr]View),
		byName: make(map[string]View),
	}
}

// Register records the parameter names of fn.
//
// The number of names must equal fn's parameter count. Registering the same
// function again replaces the earlier names.
func (r *Registry) Register(fn any, params ...string) error {
	v, err := funcValue(fn)
	if err != nil {
		return err
	}

	name := FuncName(fn)
	typ := v.Type()
	if typ.NumIn() != len(params) {
		return &ResolveError{
			Code:    ErrCodeArityMismatch,
			Func:    name,
			Message: fmt.Sprintf("function takes %d parameter(s), %d name(s) given", typ.NumIn(), len(params)),
		}
	}

	view := View{
		Name:     name,
		Params:   slices.Clone(params),
		Results:  typ.NumOut(),
		Variadic: typ.IsVariadic(),
	}
	if err := view.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode[v.Pointer()] = view
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for package-level registration of known functions.
func (r *Registry) MustRegister(fn any, params ...string) {
	if err := r.Register(fn, params...); err != nil {
		panic(err)
	}
}

// Unregister forgets fn's registered names. It reports whether fn was
// registered.
func (r *Registry) Unregister(fn any) bool {
	pc, err := CodePointer(fn)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byCode[pc]
	delete(r.byCode, pc)
	return ok
}

// Declare records a signature by name, for callables that are not Go
// function values (scenario targets, external tooling).
func (r *Registry) Declare(view View) error {
	if view.Name == "" {
		return &ResolveError{Code: ErrCodeInvalidName, Message: "declared signature needs a name"}
	}
	if err := view.Validate(); err != nil {
		return err
	}
	view.Params = slices.Clone(view.Params)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[view.Name] = view
	return nil
}

// Lookup returns the declared signature called name.
func (r *Registry) Lookup(name string) (View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	view, ok := r.byName[name]
	return view, ok
}

// Names returns every declared name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Signature implements Provider. A string argument is looked up by declared
// name; a function is looked up by code pointer.
func (r *Registry) Signature(fn any) (View, error) {
	if name, ok := fn.(string); ok {
		if view, ok := r.Lookup(name); ok {
			return view, nil
		}
		return View{}, &ResolveError{Code: ErrCodeNotFound, Func: name, Message: "no declared signature"}
	}

	pc, err := CodePointer(fn)
	if err != nil {
		return View{}, err
	}

	r.mu.RLock()
	view, ok := r.byCode[pc]
	r.mu.RUnlock()
	if !ok {
		return View{}, &ResolveError{Code: ErrCodeNotFound, Func: FuncName(fn), Message: "function not registered"}
	}
	return view, nil
}
