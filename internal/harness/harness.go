package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/annotizer/internal/annotate"
	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/render"
	"github.com/roach88/annotizer/internal/signature"
	"github.com/roach88/annotizer/internal/testutil"
)

// Harness holds the state of one scenario run.
type Harness struct {
	scenario   *Scenario
	view       signature.View
	namespaces map[string]*annotate.Namespace
	aliases    render.Aliases
	seq        *testutil.Sequence
	logger     *slog.Logger
}

// RunOption configures Run.
type RunOption func(*Harness)

// WithLogger routes harness and namespace logs to l. The default discards
// them.
func WithLogger(l *slog.Logger) RunOption {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the CUE specs into a fresh signature registry
//  2. Resolve the target declaration
//  3. Build one namespace per declaration
//  4. Apply the steps to a declared target, recording the trace
//  5. Render the metadata and evaluate assertions
//
// An error is returned when the scenario is invalid or cannot run at all.
// Failed assertions are reported through Result.
func Run(scenario *Scenario, opts ...RunOption) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h := &Harness{
		scenario:   scenario,
		namespaces: make(map[string]*annotate.Namespace, len(scenario.Namespaces)),
		aliases:    make(render.Aliases, len(scenario.Namespaces)),
		seq:        testutil.NewSequence(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	registry := signature.NewRegistry()
	for _, spec := range scenario.Specs {
		if _, err := signature.LoadCUEInto(registry, spec); err != nil {
			return nil, fmt.Errorf("failed to load specs: %w", err)
		}
	}

	view, ok := registry.Lookup(scenario.Target)
	if !ok {
		return nil, fmt.Errorf("target %q is not declared in %v", scenario.Target, scenario.Specs)
	}
	h.view = view

	if err := h.buildNamespaces(); err != nil {
		return nil, err
	}

	target := annotate.Declare(view)
	result := NewResult()
	for i, step := range scenario.Steps {
		h.apply(target, step)
		event := h.record(step)
		result.AddStep(event)

		h.logger.Info("step applied",
			"step", i,
			"seq", event.Seq,
			"namespace", step.Namespace,
			"kind", event.Kind,
		)
	}

	store := target.Annotations()
	result.Annotations = render.Tree(store, h.aliases)
	digest, err := render.StoreDigest(store)
	if err != nil {
		return nil, fmt.Errorf("failed to digest annotations: %w", err)
	}
	result.Digest = digest

	actx := &AssertionContext{
		Store:   store,
		IDs:     h.ids(),
		Replay:  h.replay,
		Aliases: h.aliases,
	}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// buildNamespaces creates a namespace per declaration. Missing ids are
// generated sequentially so runs are reproducible.
func (h *Harness) buildNamespaces() error {
	gen := testutil.NewSequentialGenerator()
	owners := make(map[ident.ID]string, len(h.scenario.Namespaces))

	for _, decl := range h.scenario.Namespaces {
		var id ident.ID
		if decl.ID == "" {
			id = gen.Generate()
		} else {
			parsed, err := ident.Parse(decl.ID)
			if err != nil {
				return fmt.Errorf("namespace %q: %w", decl.Alias, err)
			}
			id = parsed
		}

		if other, dup := owners[id]; dup {
			return fmt.Errorf("namespaces %q and %q share identifier %s", other, decl.Alias, id)
		}
		owners[id] = decl.Alias

		opts := []annotate.Option{
			annotate.WithLogger(h.logger.With("alias", decl.Alias)),
			annotate.WithStrict(h.scenario.Strict),
		}
		if decl.ParameterPolicy == PolicyAppend {
			opts = append(opts, annotate.WithParameterFactory(annotate.NewAppendParameterDecorator))
		}

		h.namespaces[decl.Alias] = annotate.NewNamespace(id, opts...)
		h.aliases[id] = decl.Alias
	}
	return nil
}

func (h *Harness) decorator(step Step) annotate.Decorator {
	ns := h.namespaces[step.Namespace]
	if step.Params != nil {
		return ns.Parameters(step.Params)
	}
	return ns.Return(step.Return)
}

func (h *Harness) apply(target annotate.Target, step Step) {
	annotate.Decorate(target, h.decorator(step))
}

func (h *Harness) record(step Step) StepEvent {
	event := StepEvent{
		Seq:       h.seq.Next(),
		Namespace: step.Namespace,
		Kind:      step.Kind(),
	}
	if step.Params != nil {
		event.Options = step.Params
	} else {
		event.Value = step.Return
	}
	return event
}

// replay applies only alias's steps to a fresh target.
func (h *Harness) replay(alias string) annotate.Target {
	target := annotate.Declare(h.view)
	for _, step := range h.scenario.Steps {
		if step.Namespace == alias {
			h.apply(target, step)
		}
	}
	return target
}

func (h *Harness) ids() map[string]ident.ID {
	out := make(map[string]ident.ID, len(h.namespaces))
	for alias, ns := range h.namespaces {
		out[alias] = ns.ID()
	}
	return out
}
