package notes

import (
	"fmt"
	"strings"
	"time"
)

// Create validates the input and returns a new sequence with a fresh note
// prepended. On a validation error seq is returned unchanged.
func Create(seq Notes, in Input, now time.Time) (Notes, Note, error) {
	return create(seq, in, NewID(), now)
}

func create(seq Notes, in Input, id string, now time.Time) (Notes, Note, error) {
	in, err := Validate(in)
	if err != nil {
		return seq, Note{}, err
	}
	if id == "" {
		return seq, Note{}, fmt.Errorf("create: %w", ErrMalformed)
	}
	if seq.Index(id) >= 0 {
		return seq, Note{}, fmt.Errorf("create %q: %w", id, ErrDuplicateID)
	}

	ts := stamp(now)
	n := Note{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	out := make(Notes, 0, len(seq)+1)
	out = append(out, n)
	out = append(out, seq...)
	return out, n, nil
}

// Edit validates the input and replaces the title and content of the note
// with the given id. A missing id reports ok=false with seq unchanged.
// Validation runs before the lookup.
func Edit(seq Notes, id string, in Input, now time.Time) (Notes, Note, bool, error) {
	in, err := Validate(in)
	if err != nil {
		return seq, Note{}, false, err
	}
	i := seq.Index(id)
	if i < 0 {
		return seq, Note{}, false, nil
	}

	out := seq.Clone()
	n := out[i]
	n.Title = in.Title
	n.Content = in.Content
	n.UpdatedAt = nextUpdate(n.UpdatedAt, now)
	out[i] = n
	return out, n, true, nil
}

// Delete removes the note with the given id. Deleting an unknown id is a
// no-op that reports false.
func Delete(seq Notes, id string) (Notes, bool) {
	i := seq.Index(id)
	if i < 0 {
		return seq, false
	}
	out := make(Notes, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	out = append(out, seq[i+1:]...)
	return out, true
}

// Filter returns the notes whose title or content contains query,
// case-insensitively, in their original order. An empty query matches all.
func Filter(seq Notes, query string) Notes {
	if query == "" {
		return seq.Clone()
	}
	q := strings.ToLower(query)
	out := make(Notes, 0, len(seq))
	for _, n := range seq {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
