package notes

import (
	"errors"
	"fmt"
)

var (
	// ErrTitleRequired is reported when a create or edit has an empty or
	// whitespace-only title.
	ErrTitleRequired = errors.New("title is required")

	// ErrMalformed is reported when the stored note sequence cannot be decoded.
	ErrMalformed = errors.New("malformed note data")

	// ErrNotFound is reported by lookups on an unknown id.
	ErrNotFound = errors.New("note not found")

	// ErrDuplicateID is reported when a generated id is already in use.
	ErrDuplicateID = errors.New("duplicate note id")
)

// ValidationError is a field-level validation failure on form input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrTitleRequired) match title failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrTitleRequired && e.Field == "title"
}

// PersistError reports a failed save after a mutation was applied in memory.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: save notes: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
