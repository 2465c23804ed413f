package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Persister loads and saves the whole note sequence.
type Persister interface {
	Load(ctx context.Context) (Notes, error)
	Save(ctx context.Context, seq Notes) error
}

// Quarantiner is implemented by persisters that can move a bad stored value
// aside before it is overwritten.
type Quarantiner interface {
	Quarantine(ctx context.Context) error
}

// maxIDAttempts bounds id regeneration on collision.
const maxIDAttempts = 3

// Book owns the in-memory note sequence and mirrors every accepted mutation
// to its Persister. It is not safe for concurrent use.
type Book struct {
	seq    Notes
	store  Persister
	clock  Clock
	newID  func() string
	logger *slog.Logger
	// unread is set while the stored value failed to load. It must be set
	// aside before the next save may overwrite it.
	unread bool
}

// Option configures a Book.
type Option func(*Book)

// WithClock sets the time source for timestamps.
func WithClock(c Clock) Option {
	return func(b *Book) { b.clock = c }
}

// WithIDGenerator sets the id source for new notes.
func WithIDGenerator(fn func() string) Option {
	return func(b *Book) { b.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// Open loads the sequence from p. If loading fails the book starts empty and
// remains usable; the load error is still returned so callers can report it.
func Open(ctx context.Context, p Persister, opts ...Option) (*Book, error) {
	b := &Book{
		seq:    Notes{},
		store:  p,
		clock:  SystemClock,
		newID:  NewID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.load(ctx); err != nil {
		b.logger.Warn("notes: load failed, starting empty", "error", err)
		return b, err
	}
	return b, nil
}

// load replaces memory with the stored sequence. On failure memory is left
// as it was.
func (b *Book) load(ctx context.Context) error {
	seq, err := b.store.Load(ctx)
	if err != nil {
		b.unread = true
		return fmt.Errorf("load notes: %w", err)
	}
	b.seq = seq
	b.unread = false
	b.logger.Debug("notes: loaded", "count", len(seq))
	return nil
}

// Reload re-reads the sequence from the persister, replacing memory. If the
// read fails the current notes are kept.
func (b *Book) Reload(ctx context.Context) error {
	if err := b.load(ctx); err != nil {
		b.logger.Warn("notes: reload failed, keeping current notes", "error", err, "count", len(b.seq))
		return err
	}
	return nil
}

// All returns a copy of the sequence.
func (b *Book) All() Notes {
	return b.seq.Clone()
}

// Len returns the number of notes.
func (b *Book) Len() int {
	return len(b.seq)
}

// Get returns the note with the given id.
func (b *Book) Get(id string) (Note, bool) {
	return b.seq.Find(id)
}

// Search returns the notes matching query.
func (b *Book) Search(query string) Notes {
	return Filter(b.seq, query)
}

// Create adds a note and saves.
func (b *Book) Create(ctx context.Context, in Input) (Note, error) {
	var (
		seq Notes
		n   Note
		err error
	)
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		seq, n, err = create(b.seq, in, b.newID(), b.clock())
		if !errors.Is(err, ErrDuplicateID) {
			break
		}
	}
	if err != nil {
		return Note{}, err
	}
	b.seq = seq
	b.logger.Debug("notes: created", "id", n.ID)
	return n, b.save(ctx, "create")
}

// Edit updates the note with the given id and saves. ok is false when the
// id is unknown, in which case nothing is saved.
func (b *Book) Edit(ctx context.Context, id string, in Input) (Note, bool, error) {
	seq, n, ok, err := Edit(b.seq, id, in, b.clock())
	if err != nil || !ok {
		return Note{}, false, err
	}
	b.seq = seq
	b.logger.Debug("notes: edited", "id", id)
	return n, true, b.save(ctx, "edit")
}

// Delete removes the note with the given id and saves if it existed.
func (b *Book) Delete(ctx context.Context, id string) (bool, error) {
	seq, ok := Delete(b.seq, id)
	if !ok {
		return false, nil
	}
	b.seq = seq
	b.logger.Debug("notes: deleted", "id", id)
	return true, b.save(ctx, "delete")
}

// save writes the sequence. A stored value that failed to load is set aside
// first; when that is impossible nothing is written.
func (b *Book) save(ctx context.Context, op string) error {
	if b.unread {
		if q, ok := b.store.(Quarantiner); ok {
			if err := q.Quarantine(ctx); err != nil {
				b.logger.Error("notes: quarantine failed, not saving", "op", op, "error", err)
				return &PersistError{Op: op, Err: fmt.Errorf("quarantine: %w", err)}
			}
			b.logger.Warn("notes: set aside unreadable stored data")
		}
		b.unread = false
	}
	if err := b.store.Save(ctx, b.seq); err != nil {
		b.logger.Error("notes: save failed", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}
