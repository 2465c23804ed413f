package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/notes"
)

// run executes jot against an isolated store dir and config path.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{config.EnvDir, config.EnvBackend, config.EnvSQLiteDriver, config.EnvTheme} {
		t.Setenv(k, "") // restores the value on cleanup
		os.Unsetenv(k)
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{
		"--config", filepath.Join(dir, "config.json"),
		"--env-file", filepath.Join(dir, ".env"),
		"--dir", dir,
	}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, dir, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}

func decodeNote(t *testing.T, s string) notes.Note {
	t.Helper()
	var n notes.Note
	require.NoError(t, json.Unmarshal([]byte(s), &n))
	return n
}

func decodeList(t *testing.T, s string) notes.Notes {
	t.Helper()
	var seq notes.Notes
	require.NoError(t, json.Unmarshal([]byte(s), &seq))
	return seq
}

func TestAddListSearch(t *testing.T) {
	dir := t.TempDir()

	g := decodeNote(t, mustRun(t, dir, "add", "--title", "Groceries", "--content", "Milk,eggs"))
	assert.Equal(t, "Groceries", g.Title)
	assert.NotEmpty(t, g.ID)
	todo := decodeNote(t, mustRun(t, dir, "add", "-t", "  Todo  ", "-c", "Call mom"))
	assert.Equal(t, "Todo", todo.Title)

	all := decodeList(t, mustRun(t, dir, "list"))
	require.Len(t, all, 2)
	assert.Equal(t, todo.ID, all[0].ID, "most recent first")

	found := decodeList(t, mustRun(t, dir, "search", "MILK"))
	require.Len(t, found, 1)
	assert.Equal(t, g.ID, found[0].ID)

	empty := decodeList(t, mustRun(t, dir, "search", "zzz"))
	assert.Empty(t, empty)

	_, err := os.Stat(filepath.Join(dir, "notes.json"))
	assert.NoError(t, err, "file backend writes notes.json")
}

func TestListEmptyStore(t *testing.T) {
	out := mustRun(t, t.TempDir(), "list")
	assert.Equal(t, "[]\n", out)
}

func TestPrettyJSON(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "--title", "A")
	out := mustRun(t, dir, "list", "--pretty")
	assert.Contains(t, out, "\n  {\n    \"id\"")
}

func TestAddRequiresTitle(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, dir, "add", "--title", "   ", "--content", "x")
	require.Error(t, err)
	assert.Equal(t, "Title is required", err.Error())
	assert.True(t, errors.Is(err, notes.ErrTitleRequired))

	assert.Empty(t, decodeList(t, mustRun(t, dir, "list")))
}

func TestEdit(t *testing.T) {
	dir := t.TempDir()
	n := decodeNote(t, mustRun(t, dir, "add", "--title", "Groceries", "--content", "Milk"))

	edited := decodeNote(t, mustRun(t, dir, "edit", n.ID, "--content", "Bread"))
	assert.Equal(t, "Groceries", edited.Title, "unspecified title is kept")
	assert.Equal(t, "Bread", edited.Content)
	assert.True(t, edited.CreatedAt.Equal(n.CreatedAt))
	assert.True(t, edited.Edited())

	_, _, err := run(t, dir, "edit", n.ID, "--title", "")
	assert.ErrorIs(t, err, notes.ErrTitleRequired)

	_, _, err = run(t, dir, "edit", "missing", "--title", "x")
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestRm(t *testing.T) {
	dir := t.TempDir()
	a := decodeNote(t, mustRun(t, dir, "add", "--title", "A"))
	b := decodeNote(t, mustRun(t, dir, "add", "--title", "B"))

	var res removedResult
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "rm", a.ID, "nope")), &res))
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, []string{a.ID}, res.IDs)

	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "rm", a.ID)), &res))
	assert.Equal(t, 0, res.Removed, "rm is idempotent")

	all := decodeList(t, mustRun(t, dir, "list"))
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "--title", "Groceries", "--content", "**Milk**")

	md := mustRun(t, dir, "export")
	assert.Contains(t, md, "# Notes")
	assert.Contains(t, md, "## Groceries")

	out := filepath.Join(dir, "notes.html")
	mustRun(t, dir, "export", "-o", out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<strong>Milk</strong>", "format follows the .html extension")

	mdOut := filepath.Join(dir, "notes.html.md")
	mustRun(t, dir, "export", "--format", "markdown", "-o", mdOut)
	data, err = os.ReadFile(mdOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Notes"))

	_, _, err = run(t, dir, "export", "--format", "pdf")
	assert.Error(t, err)
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()

	n := decodeNote(t, mustRun(t, dir, "--backend", "sqlite", "add", "--title", "In sqlite"))
	all := decodeList(t, mustRun(t, dir, "--backend", "sqlite", "list"))
	require.Len(t, all, 1)
	assert.Equal(t, n.ID, all[0].ID)

	_, err := os.Stat(filepath.Join(dir, "jot.db"))
	assert.NoError(t, err)
	assert.Empty(t, decodeList(t, mustRun(t, dir, "list")), "file backend is separate")
}

func TestUnknownBackend(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "--backend", "redis", "list")
	var invalid *config.InvalidError
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestMalformedStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0644))

	out, stderr, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "malformed")

	mustRun(t, dir, "add", "--title", "Fresh")
	matches, err := filepath.Glob(filepath.Join(dir, "notes.corrupt-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1, "bad value is kept aside")
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	all := decodeList(t, mustRun(t, dir, "list"))
	require.Len(t, all, 1)
	assert.Equal(t, "Fresh", all[0].Title)
}

func TestUnreadableStore(t *testing.T) {
	dir := t.TempDir()
	notesPath := filepath.Join(dir, "notes.json")
	require.NoError(t, os.Mkdir(notesPath, 0755))

	out, stderr, err := run(t, dir, "list")
	require.NoError(t, err, "an unreadable store starts empty")
	assert.Equal(t, "[]\n", out)
	assert.Contains(t, stderr, "warning:")

	_, _, err = run(t, dir, "add", "--title", "x")
	var pe *notes.PersistError
	require.True(t, errors.As(err, &pe), "got %v", err)

	info, err := os.Stat(notesPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "unreadable value is left alone")
}

func TestConfigInitAndPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	out := mustRun(t, dir, "--config", path, "config", "path")
	assert.Equal(t, path+"\n", out)

	out = mustRun(t, dir, "--config", path, "config", "init")
	assert.Equal(t, path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")

	_, _, err = run(t, dir, "--config", path, "config", "init")
	assert.Error(t, err, "existing file is not overwritten")
	mustRun(t, dir, "--config", path, "config", "init", "--force")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
}

func TestConfigInitIgnoresBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, _, err := run(t, dir, "--config", path, "list")
	require.Error(t, err)

	mustRun(t, dir, "--config", path, "config", "init", "--force")
	_, _, err = run(t, dir, "--config", path, "list")
	assert.NoError(t, err)
}

func TestVersionFlag(t *testing.T) {
	out := mustRun(t, t.TempDir(), "--version")
	assert.True(t, strings.HasPrefix(out, "jot version "), out)
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JOT_BACKEND=sqlite\n"), 0644))

	mustRun(t, dir, "add", "--title", "via env")
	_, err := os.Stat(filepath.Join(dir, "jot.db"))
	assert.NoError(t, err, "dotenv selected the sqlite backend")

	// Flags win over the environment.
	assert.Empty(t, decodeList(t, mustRun(t, dir, "--backend", "file", "list")))
}
