package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sharednotes/internal/sharing/domain/entities"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHARING_STORAGE_DRIVER", "sqlite")
	t.Setenv("SHARING_SQLITE_PATH", filepath.Join(t.TempDir(), "notes.db"))
	t.Setenv("SHARING_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SHARING_LOGGER_LEVEL", "error")
	t.Setenv("SHARING_PUBLIC_URL", "https://notes.example/")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNoteLifecycle(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "note", "save", "n1", "--title", "Plan", "--content", "Draft v1")
	require.NoError(t, err)

	out, err := execute(t, "-o", "yaml", "note", "get", "n1")
	require.NoError(t, err)

	var note noteView
	require.NoError(t, yaml.Unmarshal([]byte(out), &note))
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "Draft v1", note.Content)

	out, err = execute(t, "-o", "yaml", "note", "new", "--title", "Other")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &note))
	assert.Len(t, note.ID, 12)
}

func TestTokensAndViewing(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "note", "save", "n1", "--title", "Plan", "--content", "Draft v1")
	require.NoError(t, err)

	for range entities.MaxTokensPerNote {
		_, err = execute(t, "token", "create", "n1")
		require.NoError(t, err)
	}

	_, err = execute(t, "token", "create", "n1")
	require.ErrorIs(t, err, entities.ErrCapExceeded)

	out, err := execute(t, "-o", "yaml", "token", "list", "n1")
	require.NoError(t, err)

	var tokens []tokenView
	require.NoError(t, yaml.Unmarshal([]byte(out), &tokens))
	require.Len(t, tokens, entities.MaxTokensPerNote)
	assert.Contains(t, tokens[0].ShareURL, "https://notes.example/?id=n1&token="+tokens[0].Token)

	_, err = execute(t, "note", "save", "n1", "--title", "Plan", "--content", "Draft v2")
	require.NoError(t, err)

	out, err = execute(t, "-o", "yaml", "view", "n1", "--token", tokens[1].Token)
	require.NoError(t, err)
	var snap snapshotView
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "Draft v2", snap.Content)

	out, err = execute(t, "-o", "json", "view", "--link", "?view=viewer&id=n1&token="+tokens[2].Token)
	require.NoError(t, err)
	assert.Contains(t, out, `"content": "Draft v2"`)

	_, err = execute(t, "view", "n1", "--token", "nope")
	require.ErrorIs(t, err, entities.ErrRejected)

	_, err = execute(t, "view", "--link", "?id=n1")
	require.ErrorIs(t, err, ErrNotViewerLink)
}

func TestLinkCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "link", "n1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example/?id=n1&token=abc&view=viewer\n", out)

	out, err = execute(t, "link", "--editor", "n1")
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example/?id=n1&view=editor\n", out)

	out, err = execute(t, "link", "n1")
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example/?id=n1&view=viewer\n", out)

	_, err = execute(t, "link")
	require.Error(t, err)
}

func TestUnknownOutput(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "-o", "xml", "link", "n1", "abc")
	require.ErrorIs(t, err, ErrUnknownOutput)
}

func TestMigrateSQLite(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "migrate")
	require.NoError(t, err)
}
