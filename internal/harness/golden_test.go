package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"shared_render", "append_policy"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot_OmitsEmptyFields(t *testing.T) {
	scenario := &Scenario{Name: "s", Target: "render"}
	result := NewResult()
	result.AddStep(StepEvent{Seq: 1, Namespace: "a", Kind: "return", Value: 2.5})

	data, err := Snapshot(scenario, result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"annotations":{},"scenario_name":"s","target":"render","trace":[{"kind":"return","namespace":"a","seq":1,"value":"2.5"}]}`,
		string(data))
}
