package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/annotizer/internal/ident"
)

func TestNewID_Default(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "new-id")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1)
	id, err := ident.Parse(lines[0])
	require.NoError(t, err)
	assert.Equal(t, 4, int(id.UUID().Version()))
}

func TestNewID_CountAndV7(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "new-id", "-n", "3", "--v7", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			IDs []string `json:"ids"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.IDs, 3)
	for _, s := range resp.Data.IDs {
		id, err := ident.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, 7, int(id.UUID().Version()))
	}
}

func TestNewID_ConfiguredVersion(t *testing.T) {
	isolate(t)
	t.Setenv("ANNOTIZER_ID_VERSION", "7")

	out, _, err := execute(t, "new-id")
	require.NoError(t, err)
	id, err := ident.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, 7, int(id.UUID().Version()))
}

func TestNewID_InvalidCount(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "new-id", "--count", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckID(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "check-id", "11111111-1111-4111-8111-111111111111", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "✓ 11111111-1111-4111-8111-111111111111", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "✗ INVALID_IDENTIFIER_FORMAT"), lines[1])
}

func TestCheckID_CanonicalizesCase(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "check-id", "AAAAAAAA-1111-4111-8111-111111111111")
	require.NoError(t, err)
	assert.Equal(t, "✓ aaaaaaaa-1111-4111-8111-111111111111\n", out)
}

func TestCheckID_JSON(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "check-id", "--format", "json", "nope")
	require.Error(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_IDENTIFIER_FORMAT", resp.Error.Code)
}

func TestCheckID_MissingArgs(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "check-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}
