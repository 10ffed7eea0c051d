package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := &Printer{Format: FormatJSON, Writer: buf}

	require.NoError(t, printer.Success(map[string]string{"id": "x"}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"id": "x"}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestPrinter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := &Printer{Format: FormatJSON, Writer: buf}

	require.NoError(t, printer.Error("INVALID_IDENTIFIER_FORMAT", "bad id", []string{"nope"}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_IDENTIFIER_FORMAT", resp.Error.Code)
	assert.Equal(t, "bad id", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestPrinter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := &Printer{Format: FormatText, Writer: buf}

	require.NoError(t, printer.Success("as-is\n"))
	require.NoError(t, printer.Success(42))
	assert.Equal(t, "as-is\n42\n", buf.String())
}

func TestPrinter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			printer := &Printer{Format: FormatText, Writer: buf, Verbose: tt.verbose}

			require.NoError(t, printer.Error("E005", "path not found", "specs/"))
			assert.Contains(t, buf.String(), "Error [E005]: path not found")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: specs/")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestPrinter_Logf(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	printer := &Printer{Format: FormatJSON, Writer: out, ErrWriter: errOut, Verbose: true}

	printer.Logf("Loaded %d file(s)", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "Loaded 2 file(s)\n", errOut.String())

	quiet := &Printer{Format: FormatText, Writer: out}
	quiet.Logf("hidden")
	assert.Empty(t, out.String())
	assert.Equal(t, out, quiet.diag())
}

func TestPrinter_JSON(t *testing.T) {
	assert.True(t, (&Printer{Format: FormatJSON}).JSON())
	assert.False(t, (&Printer{Format: FormatText}).JSON())
	assert.False(t, (&Printer{}).JSON())
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit error", NewExitError(ExitCommandError, "bad"), ExitCommandError},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(ExitSuccess, "fine")), ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestWrapExitError(t *testing.T) {
	inner := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "loading configuration", inner)

	assert.Equal(t, "loading configuration: no such file", err.Error())
	assert.ErrorIs(t, err, inner)
}
