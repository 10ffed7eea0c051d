package annotate

import (
	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/metadata"
)

// ReturnDecorator writes a single value to the return slot under its
// namespace's DocKey.
type ReturnDecorator struct {
	binding Binding
	value   any
}

// NewReturnDecorator returns a decorator attaching value to the return slot.
func NewReturnDecorator(b Binding, value any) *ReturnDecorator {
	return &ReturnDecorator{binding: b, value: value}
}

// ID returns the identifier the decorator writes under.
func (d *ReturnDecorator) ID() ident.ID {
	return d.binding.ID
}

// Value returns the configured value.
func (d *ReturnDecorator) Value() any {
	return d.value
}

// Apply implements Decorator. The return slot is created when absent;
// other namespaces' entries in it are left alone. A nil decorator leaves t
// untouched.
func (d *ReturnDecorator) Apply(t Target) Target {
	if d == nil {
		return t
	}
	store := t.Annotations()
	store.EnsureSlot(metadata.ReturnSlot)
	store.Set(metadata.ReturnSlot, d.binding.ID, metadata.DocKey, d.value)
	return t
}
