package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/jot/internal/notes"
)

func newFilePersister(t *testing.T) (*KVPersister, string) {
	t.Helper()
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	return NewPersister(kv, "notes", WithTimeout(time.Second)), dir
}

func TestPersister_AbsentKeyIsEmpty(t *testing.T) {
	p, _ := newFilePersister(t)
	seq, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, seq)
	assert.Empty(t, seq)
}

func TestPersister_BookRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, dir := newFilePersister(t)

	book, err := notes.Open(ctx, p)
	require.NoError(t, err)
	_, err = book.Create(ctx, notes.Input{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	_, err = book.Create(ctx, notes.Input{Title: "Todo"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"Groceries"`)
	assert.True(t, p.Ours(data))

	reopened, err := notes.Open(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, book.All(), reopened.All())
}

func TestPersister_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(ctx, t.TempDir(), "sqlite")
	require.NoError(t, err)
	defer kv.Close()
	p := NewPersister(kv, "notes")

	book, err := notes.Open(ctx, p)
	require.NoError(t, err)
	n, err := book.Create(ctx, notes.Input{Title: "stored in sqlite"})
	require.NoError(t, err)

	reopened, err := notes.Open(ctx, p)
	require.NoError(t, err)
	got, ok := reopened.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got)
}

func TestPersister_QuarantineMalformed(t *testing.T) {
	ctx := context.Background()
	p, dir := newFilePersister(t)
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }

	bad := []byte(`{"this is": "not a list"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), bad, 0644))

	book, err := notes.Open(ctx, p)
	require.ErrorIs(t, err, notes.ErrMalformed)
	assert.Equal(t, 0, book.Len())

	_, err = book.Create(ctx, notes.Input{Title: "fresh start"})
	require.NoError(t, err)

	aside, err := os.ReadFile(filepath.Join(dir, "notes.corrupt-1700000000000.json"))
	require.NoError(t, err)
	assert.Equal(t, bad, aside)

	seq, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, "fresh start", seq[0].Title)
}

func TestPersister_WatchPath(t *testing.T) {
	p, dir := newFilePersister(t)
	path, ok := p.WatchPath()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "notes.json"), path)

	kv, err := OpenSQLite(context.Background(), t.TempDir(), "sqlite")
	require.NoError(t, err)
	defer kv.Close()
	_, ok = NewPersister(kv, "notes").WatchPath()
	assert.False(t, ok)
}
