// Package notes holds the note model and the operations over an ordered,
// persisted sequence of notes.
package notes

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayout is the ISO-8601 form used on disk (millisecond precision, UTC).
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Note represents a single note.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Edited reports whether the note was changed after it was created.
func (n Note) Edited() bool {
	return n.UpdatedAt.After(n.CreatedAt)
}

// wireNote is the persisted shape of a Note.
type wireNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// MarshalJSON encodes the note with ISO-8601 millisecond timestamps.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: n.UpdatedAt.UTC().Format(timestampLayout),
	})
}

// UnmarshalJSON decodes a note. Timestamps accept any RFC 3339 value.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	created, err := parseTimestamp(w.CreatedAt)
	if err != nil {
		return fmt.Errorf("note %q createdAt: %w", w.ID, err)
	}
	updated, err := parseTimestamp(w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("note %q updatedAt: %w", w.ID, err)
	}
	*n = Note{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Notes is an ordered sequence of notes, newest-created first.
type Notes []Note

// Index returns the position of the note with the given id, or -1.
func (ns Notes) Index(id string) int {
	for i := range ns {
		if ns[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the note with the given id.
func (ns Notes) Find(id string) (Note, bool) {
	if i := ns.Index(id); i >= 0 {
		return ns[i], true
	}
	return Note{}, false
}

// Clone returns a copy that shares no backing array with ns.
// A nil or empty sequence clones to an empty, non-nil one.
func (ns Notes) Clone() Notes {
	out := make(Notes, len(ns))
	copy(out, ns)
	return out
}
