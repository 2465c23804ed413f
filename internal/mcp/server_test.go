package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/jot/internal/notes"
)

var t0 = time.Date(2025, 3, 14, 9, 26, 53, 589e6, time.UTC)

type memStore struct {
	seq     notes.Notes
	saves   int
	saveErr error
}

func (s *memStore) Load(context.Context) (notes.Notes, error) { return s.seq.Clone(), nil }

func (s *memStore) Save(_ context.Context, seq notes.Notes) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.seq = seq.Clone()
	return nil
}

func newService(t *testing.T) (*service, *memStore) {
	t.Helper()
	store := &memStore{seq: notes.Notes{
		{ID: "n2", Title: "Todo", Content: "Call mom", CreatedAt: t0, UpdatedAt: t0},
		{ID: "n1", Title: "Groceries", Content: "Milk,eggs", CreatedAt: t0, UpdatedAt: t0},
	}}
	book, err := notes.Open(context.Background(), store)
	require.NoError(t, err)
	return &service{book: book, logger: slog.Default()}, store
}

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func decodeNotes(t *testing.T, s string) notes.Notes {
	t.Helper()
	var seq notes.Notes
	require.NoError(t, json.Unmarshal([]byte(s), &seq))
	return seq
}

func TestNewServer(t *testing.T) {
	svc, _ := newService(t)
	assert.NotNil(t, NewServer(svc.book, "test", nil))
}

func TestListAndSearch(t *testing.T) {
	svc, _ := newService(t)

	out, isErr := call(t, svc.handleList, nil)
	require.False(t, isErr)
	all := decodeNotes(t, out)
	require.Len(t, all, 2)
	assert.Equal(t, "n2", all[0].ID)

	out, isErr = call(t, svc.handleSearch, map[string]any{"query": "MILK"})
	require.False(t, isErr)
	found := decodeNotes(t, out)
	require.Len(t, found, 1)
	assert.Equal(t, "Groceries", found[0].Title)

	_, isErr = call(t, svc.handleSearch, map[string]any{})
	assert.True(t, isErr, "query is required")
}

func TestGetNote(t *testing.T) {
	svc, _ := newService(t)

	out, isErr := call(t, svc.handleGet, map[string]any{"id": "n1"})
	require.False(t, isErr)
	var n notes.Note
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	assert.Equal(t, "Milk,eggs", n.Content)

	out, isErr = call(t, svc.handleGet, map[string]any{"id": "nope"})
	assert.True(t, isErr)
	assert.Contains(t, out, "note not found")
}

func TestCreateNote(t *testing.T) {
	svc, store := newService(t)

	out, isErr := call(t, svc.handleCreate, map[string]any{"title": "  New  ", "content": "body"})
	require.False(t, isErr, out)
	var n notes.Note
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	assert.Equal(t, "New", n.Title)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, n.ID, store.seq[0].ID, "new notes go first")

	out, isErr = call(t, svc.handleCreate, map[string]any{"title": "   "})
	assert.True(t, isErr)
	assert.Equal(t, "Title is required", out)
	assert.Equal(t, 1, store.saves)
}

func TestEditNote(t *testing.T) {
	svc, store := newService(t)

	out, isErr := call(t, svc.handleEdit, map[string]any{"id": "n1", "content": "Bread"})
	require.False(t, isErr, out)
	var n notes.Note
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	assert.Equal(t, "Groceries", n.Title, "omitted title is kept")
	assert.Equal(t, "Bread", n.Content)
	assert.True(t, n.Edited())
	assert.Equal(t, 1, store.saves)

	_, isErr = call(t, svc.handleEdit, map[string]any{"id": "n1", "title": ""})
	assert.True(t, isErr, "blank title is rejected")

	_, isErr = call(t, svc.handleEdit, map[string]any{"id": "missing", "title": "x"})
	assert.True(t, isErr)
}

func TestDeleteNote(t *testing.T) {
	svc, store := newService(t)

	_, isErr := call(t, svc.handleDelete, map[string]any{"id": "n2"})
	require.False(t, isErr)
	assert.Equal(t, 1, svc.book.Len())
	assert.Equal(t, 1, store.saves)

	out, isErr := call(t, svc.handleDelete, map[string]any{"id": "n2"})
	assert.True(t, isErr)
	assert.Contains(t, out, "n2")
}

func TestSaveFailure(t *testing.T) {
	svc, store := newService(t)
	store.saveErr = errors.New("disk full")

	out, isErr := call(t, svc.handleCreate, map[string]any{"title": "Kept"})
	assert.True(t, isErr)
	assert.Contains(t, out, "disk full")
	assert.Equal(t, 3, svc.book.Len(), "mutation stays applied")
}
