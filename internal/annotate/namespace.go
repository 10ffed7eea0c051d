package annotate

import (
	"fmt"
	"log/slog"

	"github.com/roach88/annotizer/internal/ident"
)

// ParameterFactory builds the decorator a namespace issues for parameter
// metadata.
type ParameterFactory func(b Binding, options map[string]any) Decorator

// ReturnFactory builds the decorator a namespace issues for return metadata.
type ReturnFactory func(b Binding, value any) Decorator

// DefaultParameterFactory issues a ParameterDecorator.
func DefaultParameterFactory(b Binding, options map[string]any) Decorator {
	return NewParameterDecorator(b, options)
}

// DefaultReturnFactory issues a ReturnDecorator.
func DefaultReturnFactory(b Binding, value any) Decorator {
	return NewReturnDecorator(b, value)
}

// Namespace binds one identifier and issues decorators that write under it.
//
// The identifier is fixed at construction. The factories can be swapped to
// change storage policy without touching callers.
type Namespace struct {
	id      ident.ID
	params  ParameterFactory
	returns ReturnFactory
	logger  *slog.Logger
	strict  bool
}

// Option configures a Namespace.
type Option func(*Namespace)

// WithParameterFactory overrides the parameter decorator implementation.
func WithParameterFactory(f ParameterFactory) Option {
	return func(n *Namespace) { n.SetParameterFactory(f) }
}

// WithReturnFactory overrides the return decorator implementation.
func WithReturnFactory(f ReturnFactory) Option {
	return func(n *Namespace) { n.SetReturnFactory(f) }
}

// WithLogger sets the logger decorators report ignored names to.
func WithLogger(l *slog.Logger) Option {
	return func(n *Namespace) { n.logger = l }
}

// WithStrict reports parameter names that match no declared parameter at
// warn level instead of debug. Decoration still succeeds.
func WithStrict(strict bool) Option {
	return func(n *Namespace) { n.strict = strict }
}

// NewNamespace returns a namespace bound to id.
func NewNamespace(id ident.ID, opts ...Option) *Namespace {
	n := &Namespace{
		id:      id,
		params:  DefaultParameterFactory,
		returns: DefaultReturnFactory,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ParseNamespace returns a namespace bound to the identifier s. A malformed
// s fails with an error matching ident.ErrInvalidIdentifierFormat.
func ParseNamespace(s string, opts ...Option) (*Namespace, error) {
	return NamespaceOf(s, opts...)
}

// MustParseNamespace is like ParseNamespace but panics on error.
// Intended for identifiers compiled into a program.
func MustParseNamespace(s string, opts ...Option) *Namespace {
	n, err := ParseNamespace(s, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// NamespaceOf accepts any representation ident.From understands.
func NamespaceOf(v any, opts ...Option) (*Namespace, error) {
	id, err := ident.From(v)
	if err != nil {
		return nil, fmt.Errorf("namespace: %w", err)
	}
	return NewNamespace(id, opts...), nil
}

// ID returns the namespace's identifier.
func (n *Namespace) ID() ident.ID {
	return n.id
}

// ParameterFactory returns the current parameter decorator implementation.
func (n *Namespace) ParameterFactory() ParameterFactory {
	return n.params
}

// SetParameterFactory replaces the parameter decorator implementation.
// A nil f restores the default.
func (n *Namespace) SetParameterFactory(f ParameterFactory) {
	if f == nil {
		f = DefaultParameterFactory
	}
	n.params = f
}

// ResetParameterFactory restores the default parameter decorator.
func (n *Namespace) ResetParameterFactory() {
	n.params = DefaultParameterFactory
}

// ReturnFactory returns the current return decorator implementation.
func (n *Namespace) ReturnFactory() ReturnFactory {
	return n.returns
}

// SetReturnFactory replaces the return decorator implementation.
// A nil f restores the default.
func (n *Namespace) SetReturnFactory(f ReturnFactory) {
	if f == nil {
		f = DefaultReturnFactory
	}
	n.returns = f
}

// ResetReturnFactory restores the default return decorator.
func (n *Namespace) ResetReturnFactory() {
	n.returns = DefaultReturnFactory
}

// Parameters issues a decorator attaching options (parameter name -> value).
func (n *Namespace) Parameters(options map[string]any) Decorator {
	return n.params(n.binding(), options)
}

// Param issues a decorator for a single parameter.
func (n *Namespace) Param(name string, value any) Decorator {
	return n.Parameters(map[string]any{name: value})
}

// Return issues a decorator attaching value to the return slot.
func (n *Namespace) Return(value any) Decorator {
	return n.returns(n.binding(), value)
}

func (n *Namespace) binding() Binding {
	return Binding{ID: n.id, Logger: n.logger, Strict: n.strict}
}
