package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes the sequence as a JSON array. An empty sequence encodes
// as [] rather than null.
func Encode(seq Notes) ([]byte, error) {
	if seq == nil {
		seq = Notes{}
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	return data, nil
}

// Decode parses a stored note sequence. Empty input and JSON null decode to
// an empty sequence. Anything else that is not an array of notes with
// unique, non-empty ids is ErrMalformed.
func Decode(data []byte) (Notes, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Notes{}, nil
	}

	var seq Notes
	if err := json.Unmarshal(trimmed, &seq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(seq))
	for i, n := range seq {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrMalformed, i)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	if seq == nil {
		seq = Notes{}
	}
	return seq, nil
}
