package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	demoIDA = "11111111-1111-4111-8111-111111111111"
	demoIDB = "22222222-2222-4222-8222-222222222222"
)

func TestDemo_Text(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "demo", "--id-a", demoIDA, "--id-b", demoIDB)
	require.NoError(t, err)

	expected := "A = " + demoIDA + "\n" +
		"B = " + demoIDB + "\n" +
		"\n" +
		"a\n" +
		"  A\n" +
		"    doc: \"a\"\n" +
		"  B\n" +
		"    doc: \"A\"\n" +
		"b\n" +
		"  A\n" +
		"    doc: \"b\"\n" +
		"  B\n" +
		"    doc: \"B\"\n" +
		"c\n" +
		"  A\n" +
		"    doc: \"c\"\n" +
		"  B\n" +
		"    doc: \"C\"\n" +
		"return\n" +
		"  A\n" +
		"    doc: \"Doesn't return anything of value\"\n" +
		"  B\n" +
		"    doc: \"Does not return a value\"\n"
	assert.Equal(t, expected, out)
}

func TestDemo_JSON(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "demo", "--format", "json", "--id-a", demoIDA, "--id-b", demoIDB)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   DemoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]string{"A": demoIDA, "B": demoIDB}, resp.Data.Namespaces)
	assert.Equal(t, map[string]any{
		"A": map[string]any{"doc": "Doesn't return anything of value"},
		"B": map[string]any{"doc": "Does not return a value"},
	}, resp.Data.Annotations["return"])
	assert.Len(t, resp.Data.Digest, 64)
}

func TestDemo_ConfiguredIdentifiers(t *testing.T) {
	isolate(t)
	t.Setenv("ANNOTIZER_DEMO_ID_A", demoIDA)

	out, _, err := execute(t, "demo", "--id-b", demoIDB)
	require.NoError(t, err)
	assert.Contains(t, out, "A = "+demoIDA+"\n")
}

func TestDemo_GeneratedIdentifiersDiffer(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "demo", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data DemoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEqual(t, resp.Data.Namespaces["A"], resp.Data.Namespaces["B"])
}

func TestDemo_Call(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "demo", "--call", "--id-a", demoIDA, "--id-b", demoIDB)
	require.NoError(t, err)
	assert.Contains(t, out, "\na = 1, b = 2, c = 3\n")
}

func TestDemo_InvalidIdentifier(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "demo", "--id-a", "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [INVALID_IDENTIFIER_FORMAT]")
}
