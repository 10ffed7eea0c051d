package signature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCUE(t *testing.T) {
	src := `
signature: {
	render: {
		params: ["a", "b", "c"]
		results: 1
	}
	format: {
		params: ["spec", "args"]
		variadic: true
	}
	noop: {}
}
`
	views, err := ParseCUE("sigs.cue", []byte(src))
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, View{Name: "render", Params: []string{"a", "b", "c"}, Results: 1}, views[0])
	assert.Equal(t, View{Name: "format", Params: []string{"spec", "args"}, Variadic: true}, views[1])
	assert.Equal(t, View{Name: "noop", Params: []string{}}, views[2])
}

func TestParseCUE_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `signature: {`},
		{"missing struct", `other: {}`},
		{"params not list", `signature: f: params: "a"`},
		{"params not strings", `signature: f: params: [1, 2]`},
		{"results not int", `signature: f: results: "one"`},
		{"variadic not bool", `signature: f: variadic: 1`},
		{"bad name", `signature: f: params: ["return"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCUE("bad.cue", []byte(tt.src))
			require.Error(t, err)
			assert.NotEmpty(t, CodeOf(err))
		})
	}
}

func TestLoadCUEInto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "funcs.cue")
	require.NoError(t, os.WriteFile(path, []byte(`signature: f: params: ["a", "b", "c"]`), 0644))

	r := NewRegistry()
	views, err := LoadCUEInto(r, path)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view, ok := r.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, view.Params)
}

func TestLoadCUE_MissingFile(t *testing.T) {
	_, err := LoadCUE("/nonexistent/funcs.cue")
	require.Error(t, err)
	assert.Equal(t, ErrCodeNoSource, CodeOf(err))
}
