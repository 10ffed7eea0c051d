package annotate

import (
	"maps"
	"slices"

	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/metadata"
)

// ParameterDecorator writes one value per declared parameter under its
// namespace's DocKey, replacing the namespace's previous value.
type ParameterDecorator struct {
	binding Binding
	options map[string]any
}

// NewParameterDecorator returns a decorator attaching options (parameter
// name -> value) under b.ID. options is copied.
func NewParameterDecorator(b Binding, options map[string]any) *ParameterDecorator {
	return &ParameterDecorator{binding: b, options: maps.Clone(options)}
}

// ID returns the identifier the decorator writes under.
func (d *ParameterDecorator) ID() ident.ID {
	return d.binding.ID
}

// Options returns a copy of the configured values.
func (d *ParameterDecorator) Options() map[string]any {
	return maps.Clone(d.options)
}

// Apply implements Decorator. A nil decorator leaves t untouched.
func (d *ParameterDecorator) Apply(t Target) Target {
	if d == nil {
		return t
	}
	view := t.Signature()
	matched, unmatched := intersect(view, d.options)

	store := t.Annotations()
	for _, name := range matched {
		store.Set(metadata.Slot(name), d.binding.ID, metadata.DocKey, d.options[name])
	}

	d.binding.reportUnmatched(view, unmatched)
	return t
}

// Appended is the list kept by AppendParameterDecorator. A []any written by
// any other policy is an opaque value, never a list to extend.
type Appended []any

// AppendParameterDecorator is an alternative storage policy: each
// application appends to a list under DocKey instead of replacing the value.
// A value left by another policy becomes the first list element.
type AppendParameterDecorator struct {
	binding Binding
	options map[string]any
}

// NewAppendParameterDecorator returns an appending decorator.
// Its signature matches ParameterFactory.
func NewAppendParameterDecorator(b Binding, options map[string]any) Decorator {
	return &AppendParameterDecorator{binding: b, options: maps.Clone(options)}
}

// Apply implements Decorator. A nil decorator leaves t untouched.
func (d *AppendParameterDecorator) Apply(t Target) Target {
	if d == nil {
		return t
	}
	view := t.Signature()
	matched, unmatched := intersect(view, d.options)

	store := t.Annotations()
	for _, name := range matched {
		entry := store.EnsureEntry(metadata.Slot(name), d.binding.ID)
		switch prev := entry[metadata.DocKey].(type) {
		case nil:
			entry[metadata.DocKey] = Appended{d.options[name]}
		case Appended:
			entry[metadata.DocKey] = append(slices.Clip(prev), d.options[name])
		default:
			entry[metadata.DocKey] = Appended{prev, d.options[name]}
		}
	}

	d.binding.reportUnmatched(view, unmatched)
	return t
}
