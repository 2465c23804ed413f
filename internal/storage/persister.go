package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus/jot/internal/notes"
)

// KVPersister stores the note sequence as one JSON value in a KV.
type KVPersister struct {
	kv      KV
	key     string
	timeout time.Duration
	now     func() time.Time

	// lastSum is the xxhash of the most recent value we wrote or read.
	lastSum atomic.Uint64
}

// PersisterOption configures a KVPersister.
type PersisterOption func(*KVPersister)

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) PersisterOption {
	return func(p *KVPersister) { p.timeout = d }
}

// NewPersister returns a notes.Persister backed by kv under key.
func NewPersister(kv KV, key string, opts ...PersisterOption) *KVPersister {
	p := &KVPersister{kv: kv, key: key, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the key holding the note sequence.
func (p *KVPersister) Key() string {
	return p.key
}

func (p *KVPersister) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

// Load reads and decodes the sequence. An absent key is an empty sequence.
func (p *KVPersister) Load(ctx context.Context) (notes.Notes, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return notes.Notes{}, nil
	}
	p.lastSum.Store(xxhash.Sum64(data))
	return notes.Decode(data)
}

// Save encodes the sequence and overwrites the stored value.
func (p *KVPersister) Save(ctx context.Context, seq notes.Notes) error {
	data, err := notes.Encode(seq)
	if err != nil {
		return err
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	// Record before writing so a watcher event racing the write is still
	// recognized as ours.
	p.lastSum.Store(xxhash.Sum64(data))
	return p.kv.Set(ctx, p.key, data)
}

// Quarantine copies the current stored value to <key>.corrupt-<unixms> so
// the next Save does not destroy it.
func (p *KVPersister) Quarantine(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	aside := p.key + ".corrupt-" + strconv.FormatInt(p.now().UnixMilli(), 10)
	if err := p.kv.Set(ctx, aside, data); err != nil {
		return fmt.Errorf("quarantine to %s: %w", aside, err)
	}
	return nil
}

// Ours reports whether data matches the last value this persister wrote or
// read.
func (p *KVPersister) Ours(data []byte) bool {
	return xxhash.Sum64(data) == p.lastSum.Load()
}

// WatchPath returns the file holding the sequence when the backend is
// file-based.
func (p *KVPersister) WatchPath() (string, bool) {
	f, ok := p.kv.(*FileKV)
	if !ok {
		return "", false
	}
	return f.Path(p.key), true
}

var (
	_ notes.Persister   = (*KVPersister)(nil)
	_ notes.Quarantiner = (*KVPersister)(nil)
)
