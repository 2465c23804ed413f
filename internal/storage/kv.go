// Package storage provides the key-value backends that hold the note
// sequence and the bridge from a KV to notes.Persister.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/jot/internal/config"
)

// ErrInvalidKey is returned for keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid key")

// KV stores opaque values under string keys.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the KV for the configured backend.
func Open(ctx context.Context, cfg config.StoreConfig) (KV, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileKV(cfg.Dir)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Dir, cfg.SQLiteDriver)
	case config.BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
