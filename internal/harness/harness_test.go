package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renderSpec = "testdata/specs/render.cue"

func TestRun_SharedRender(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/shared_render.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 4)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(4), result.Trace[3].Seq)
	assert.Equal(t, "d2", result.Trace[3].Value)
	assert.Len(t, result.Digest, 64)

	assert.Equal(t, map[string]any{
		"alpha": map[string]any{"doc": "d1"},
		"beta":  map[string]any{"doc": "d2"},
	}, result.Annotations["return"])
	assert.NotContains(t, result.Annotations, "x")
}

func TestRun_GeneratedIdentifiers(t *testing.T) {
	scenario := &Scenario{
		Name:        "generated",
		Description: "ids are generated in declaration order",
		Specs:       []string{renderSpec},
		Target:      "render",
		Namespaces:  []NamespaceDecl{{Alias: "first"}, {Alias: "second"}},
		Steps: []Step{
			{Namespace: "first", Return: "one"},
			{Namespace: "second", Return: "two"},
		},
		Assertions: []Assertion{{Type: AssertSlotCount, Slot: "return", Count: 2}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)

	// Same content under explicit sequential ids digests identically.
	scenario.Namespaces[0].ID = "00000000-0000-0000-0000-000000000001"
	scenario.Namespaces[1].ID = "00000000-0000-0000-0000-000000000002"
	explicit, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, result.Digest, explicit.Digest)
}

func TestRun_DuplicateIdentifier(t *testing.T) {
	scenario := validScenario()
	scenario.Specs = []string{renderSpec}
	scenario.Namespaces[1].ID = scenario.Namespaces[0].ID

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share identifier")
}

func TestRun_UnknownTarget(t *testing.T) {
	scenario := validScenario()
	scenario.Specs = []string{renderSpec}
	scenario.Target = "missing"

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `target "missing" is not declared`)
}

func TestRun_RejectsInvalidScenario(t *testing.T) {
	data := []byte(`
name: unvalidated
description: step names an alias nobody declared
specs: [testdata/specs/render.cue]
target: render
namespaces:
  - alias: alpha
steps:
  - namespace: ghost
    return: boo
assertions:
  - type: slot_absent
    slot: a
`)
	scenario, err := ParseScenario(data)
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
	assert.Contains(t, err.Error(), `unknown namespace "ghost"`)
}

func TestRun_BadSpec(t *testing.T) {
	scenario := validScenario()
	scenario.Specs = []string{"testdata/specs/nope.cue"}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load specs")
}

func TestRun_FailingAssertions(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "every assertion type fails once",
		Specs:       []string{renderSpec},
		Target:      "render",
		Namespaces:  []NamespaceDecl{{Alias: "alpha"}, {Alias: "beta"}},
		Steps: []Step{
			{Namespace: "alpha", Params: map[string]any{"a": "x"}},
			{Namespace: "beta", Params: map[string]any{"b": "y"}},
		},
		Assertions: []Assertion{
			{Type: AssertSlotEquals, Slot: "a", Namespace: "alpha", Value: "other"},
			{Type: AssertSlotEquals, Slot: "b", Namespace: "alpha", Value: "y"},
			{Type: AssertSlotAbsent, Slot: "a"},
			{Type: AssertSlotAbsent, Slot: "b", Namespace: "beta"},
			{Type: AssertSlotCount, Slot: "a", Count: 2},
			{Type: AssertNamespaceIsolated, Namespace: "alpha"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Assertion failed: slot_equals")
	assert.Contains(t, result.Errors[0], "Actual: x")
	assert.Contains(t, result.Errors[1], "Actual: not set")
	assert.Contains(t, result.Errors[2], "slot present")
	assert.Contains(t, result.Errors[3], "entry present")
	assert.Contains(t, result.Errors[4], "1 namespaces")
	assert.Contains(t, result.Errors[4], "Annotations:")
}

func TestRun_StrictLogsUndeclaredNames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	scenario := validScenario()
	scenario.Specs = []string{renderSpec}
	scenario.Strict = true
	scenario.Steps[0].Params = map[string]any{"a": "x", "zzz": "ignored"}

	result, err := Run(scenario, WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, result.Pass)

	assert.Contains(t, buf.String(), "zzz")
	assert.Contains(t, buf.String(), "alias=alpha")
	assert.NotContains(t, buf.String(), "step applied")
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/append_policy.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Digest, second.Digest)
}
