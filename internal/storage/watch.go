package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the event bursts produced by temp file + rename.
const watchDebounce = 150 * time.Millisecond

// Watch reports changes to the file at path made by someone else. Each
// settled change is read back and dropped when ours reports it as our own
// write. The returned channel is closed when ctx is done.
func Watch(ctx context.Context, path string, ours func([]byte) bool, logger *slog.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: atomic renames replace the file's inode.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	base := filepath.Base(path)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer

		// Protect against sending to closed channel from timer callback
		var closed bool
		var mu sync.Mutex

		defer func() {
			mu.Lock()
			closed = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			close(events)
		}()

		fire := func() {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			data, err := os.ReadFile(path)
			if err != nil && !os.IsNotExist(err) {
				logger.Debug("watch: read failed", "path", path, "error", err)
				return
			}
			if err == nil && ours != nil && ours(data) {
				return
			}
			select {
			case events <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, fire)
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("watch: error", "error", err)
			}
		}
	}()

	return events, nil
}
