// Package mcp exposes the note operations as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marcus/jot/internal/notes"
)

// service serializes tool calls onto the Book, which is not safe for
// concurrent use.
type service struct {
	mu     sync.Mutex
	book   *notes.Book
	logger *slog.Logger
}

// NewServer creates an MCP server with tools for the note book.
func NewServer(book *notes.Book, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &service{book: book, logger: logger}

	s := server.NewMCPServer(
		"jot",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List all notes, most recently created first."),
		),
		svc.handleList,
	)

	s.AddTool(
		mcp.NewTool("search_notes",
			mcp.WithDescription("Find notes whose title or content contains the query, case-insensitively."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Substring to look for"),
			),
		),
		svc.handleSearch,
	)

	s.AddTool(
		mcp.NewTool("get_note",
			mcp.WithDescription("Get a note by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
		),
		svc.handleGet,
	)

	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note. The title must not be blank."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Note title"),
			),
			mcp.WithString("content",
				mcp.Description("Note body, Markdown allowed"),
			),
		),
		svc.handleCreate,
	)

	s.AddTool(
		mcp.NewTool("edit_note",
			mcp.WithDescription("Edit a note. Omitted fields keep their current value."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("content",
				mcp.Description("New content"),
			),
		),
		svc.handleEdit,
	)

	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Delete a note by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
		),
		svc.handleDelete,
	)

	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func (s *service) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonResult(s.book.All())
}

func (s *service) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonResult(s.book.Search(query))
}

func (s *service) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.book.Get(id)
	if !ok {
		return notFound(id), nil
	}
	return jsonResult(n)
}

func (s *service) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := notes.Input{
		Title:   req.GetString("title", ""),
		Content: req.GetString("content", ""),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.book.Create(ctx, in)
	if err != nil {
		return s.mutationError("create", err), nil
	}
	s.logger.Info("mcp: note created", "id", n.ID)
	return jsonResult(n)
}

func (s *service) handleEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.book.Get(id)
	if !ok {
		return notFound(id), nil
	}
	in := notes.Input{
		Title:   req.GetString("title", cur.Title),
		Content: req.GetString("content", cur.Content),
	}
	n, ok, err := s.book.Edit(ctx, id, in)
	if err != nil {
		return s.mutationError("edit", err), nil
	}
	if !ok {
		return notFound(id), nil
	}
	s.logger.Info("mcp: note edited", "id", id)
	return jsonResult(n)
}

func (s *service) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.book.Delete(ctx, id)
	if err != nil {
		return s.mutationError("delete", err), nil
	}
	if !removed {
		return notFound(id), nil
	}
	s.logger.Info("mcp: note deleted", "id", id)
	return jsonResult(map[string]any{"deleted": id})
}

// mutationError maps a Book error to a tool error. Validation failures carry
// their user-facing message.
func (s *service) mutationError(op string, err error) *mcp.CallToolResult {
	var verr *notes.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Message)
	}
	s.logger.Error("mcp: "+op+" failed", "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s note: %v", op, err))
}

func notFound(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%v: %s", notes.ErrNotFound, id))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
