package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/jot/internal/storage"
)

// watchStartedMsg carries the change channel once the watcher is running.
type watchStartedMsg struct {
	changes <-chan struct{}
}

// watchFailedMsg reports that the watcher could not start.
type watchFailedMsg struct {
	err error
}

// notesChangedMsg signals an external change to the notes file.
type notesChangedMsg struct{}

func startWatch(ctx context.Context, path string, ours func([]byte) bool, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ch, err := storage.Watch(ctx, path, ours, logger)
		if err != nil {
			return watchFailedMsg{err: err}
		}
		return watchStartedMsg{changes: ch}
	}
}

// waitForChange blocks until the next change. A closed channel ends the
// loop.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return notesChangedMsg{}
	}
}
