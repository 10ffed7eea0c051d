package annotate

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/signature"
)

// Decorator mutates a target's metadata in place and returns the same target.
type Decorator interface {
	Apply(t Target) Target
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(t Target) Target

// Apply calls f(t).
func (f DecoratorFunc) Apply(t Target) Target {
	return f(t)
}

// Decorate applies ds to t in order and returns t. Whatever the decorators
// return is discarded, so the caller always keeps the original handle.
// Nil entries are skipped; the package's decorators also accept typed nils.
func Decorate[T Target](t T, ds ...Decorator) T {
	for _, d := range ds {
		if d != nil {
			d.Apply(t)
		}
	}
	return t
}

// Binding is what a namespace hands to decorator factories.
type Binding struct {
	// ID is the owning namespace's identifier. Decorators write under it only.
	ID ident.ID

	// Logger receives reports about ignored names. Nil discards them.
	Logger *slog.Logger

	// Strict raises ignored-name reports from debug to warn level.
	Strict bool
}

func (b Binding) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}

// reportUnmatched logs option names that matched no declared parameter.
func (b Binding) reportUnmatched(view signature.View, unmatched []string) {
	if len(unmatched) == 0 {
		return
	}
	level := slog.LevelDebug
	if b.Strict {
		level = slog.LevelWarn
	}
	b.logger().Log(context.Background(), level, "parameter metadata ignored for undeclared names",
		"func", view.Name,
		"namespace", b.ID.String(),
		"names", unmatched,
	)
}

// intersect splits option names into declared parameters (in declaration
// order) and the rest (sorted).
func intersect(view signature.View, options map[string]any) (matched, unmatched []string) {
	for _, p := range view.Params {
		if _, ok := options[p]; ok {
			matched = append(matched, p)
		}
	}
	for name := range options {
		if !view.Has(name) {
			unmatched = append(unmatched, name)
		}
	}
	slices.Sort(unmatched)
	return matched, unmatched
}
