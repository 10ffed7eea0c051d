package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/annotizer/internal/render"
)

// Snapshot renders a scenario run as canonical JSON for golden comparison:
//
//	{"annotations":{...},"scenario_name":"...","target":"...","trace":[...]}
//
// Values go through render.Value so any metadata a scenario can express has
// a stable form.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		eventMap := map[string]any{
			"seq":       event.Seq,
			"namespace": event.Namespace,
			"kind":      event.Kind,
		}
		if event.Options != nil {
			eventMap["options"] = render.Value(event.Options)
		}
		if event.Value != nil {
			eventMap["value"] = render.Value(event.Value)
		}
		trace[i] = eventMap
	}

	return render.Canonical(map[string]any{
		"scenario_name": scenario.Name,
		"target":        scenario.Target,
		"trace":         trace,
		"annotations":   result.Annotations,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result's snapshot against the golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
