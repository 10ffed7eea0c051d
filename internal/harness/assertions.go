package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/annotizer/internal/annotate"
	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/metadata"
	"github.com/roach88/annotizer/internal/render"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	View     string // Rendered metadata for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.View != "" {
		fmt.Fprintf(&buf, "\nAnnotations:\n")
		for _, line := range strings.Split(strings.TrimRight(e.View, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// AssertionContext provides what assertions evaluate against.
type AssertionContext struct {
	// Store is the final metadata.
	Store *metadata.Store

	// IDs maps aliases to namespace identifiers.
	IDs map[string]ident.ID

	// Replay applies only one alias's steps to a fresh target.
	Replay func(alias string) annotate.Target

	// Aliases renders identifiers in failure messages.
	Aliases render.Aliases
}

func (c *AssertionContext) view() string {
	return render.Text(c.Store, c.Aliases)
}

// EvaluateAssertions evaluates all assertions and returns a message per
// failure.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSlotEquals:
			err = assertSlotEquals(actx, assertion)
		case AssertSlotAbsent:
			err = assertSlotAbsent(actx, assertion)
		case AssertNamespaceIsolated:
			err = assertNamespaceIsolated(actx, assertion)
		case AssertSlotCount:
			err = assertSlotCount(actx, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertSlotEquals checks one key of one namespace's entry. Both sides are
// normalized with render.Value, so YAML numbers and lists compare naturally.
func assertSlotEquals(actx *AssertionContext, a Assertion) error {
	key := a.Key
	if key == "" {
		key = metadata.DocKey
	}

	id, err := lookupAlias(actx, a.Namespace)
	if err != nil {
		return err
	}

	actual, ok := actx.Store.Get(metadata.Slot(a.Slot), id, key)
	if !ok {
		return &AssertionError{
			Type:     AssertSlotEquals,
			Expected: fmt.Sprintf("%s[%s].%s = %v", a.Slot, a.Namespace, key, a.Value),
			Actual:   "not set",
			View:     actx.view(),
		}
	}

	if !valuesEqual(actual, a.Value) {
		return &AssertionError{
			Type:     AssertSlotEquals,
			Expected: fmt.Sprintf("%s[%s].%s = %v", a.Slot, a.Namespace, key, a.Value),
			Actual:   fmt.Sprintf("%v", actual),
			View:     actx.view(),
		}
	}
	return nil
}

// assertSlotAbsent checks that the slot is missing entirely, or when a
// namespace is named, that it has no entry there.
func assertSlotAbsent(actx *AssertionContext, a Assertion) error {
	slot := metadata.Slot(a.Slot)

	if a.Namespace == "" {
		if actx.Store.Has(slot) {
			return &AssertionError{
				Type:     AssertSlotAbsent,
				Expected: fmt.Sprintf("no slot %s", a.Slot),
				Actual:   "slot present",
				View:     actx.view(),
			}
		}
		return nil
	}

	id, err := lookupAlias(actx, a.Namespace)
	if err != nil {
		return err
	}
	if _, ok := actx.Store.Entry(slot, id); ok {
		return &AssertionError{
			Type:     AssertSlotAbsent,
			Expected: fmt.Sprintf("no entry for %s under %s", a.Namespace, a.Slot),
			Actual:   "entry present",
			View:     actx.view(),
		}
	}
	return nil
}

// assertNamespaceIsolated replays the namespace's own steps on a fresh
// target and compares its entries with the shared run. Any difference means
// another namespace's decorators touched this one's metadata.
func assertNamespaceIsolated(actx *AssertionContext, a Assertion) error {
	id, err := lookupAlias(actx, a.Namespace)
	if err != nil {
		return err
	}
	if actx.Replay == nil {
		return fmt.Errorf("namespace_isolated requires a replay function")
	}

	alone := actx.Replay(a.Namespace).Annotations().For(id)
	shared := actx.Store.For(id)
	if !reflect.DeepEqual(alone, shared) {
		return &AssertionError{
			Type:     AssertNamespaceIsolated,
			Expected: fmt.Sprintf("%s entries %v", a.Namespace, alone),
			Actual:   fmt.Sprintf("%v", shared),
			View:     actx.view(),
		}
	}
	return nil
}

// assertSlotCount checks how many namespaces have an entry under slot.
func assertSlotCount(actx *AssertionContext, a Assertion) error {
	count := len(actx.Store.IDs(metadata.Slot(a.Slot)))
	if count != a.Count {
		return &AssertionError{
			Type:     AssertSlotCount,
			Expected: fmt.Sprintf("%d namespaces under %s", a.Count, a.Slot),
			Actual:   fmt.Sprintf("%d namespaces", count),
			View:     actx.view(),
		}
	}
	return nil
}

func lookupAlias(actx *AssertionContext, alias string) (ident.ID, error) {
	id, ok := actx.IDs[alias]
	if !ok {
		return ident.Nil, fmt.Errorf("unknown namespace alias %q", alias)
	}
	return id, nil
}

func valuesEqual(actual, expected any) bool {
	return reflect.DeepEqual(render.Value(actual), render.Value(expected))
}
