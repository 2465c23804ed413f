package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	tui "github.com/marcus/jot/internal/app"
	"github.com/marcus/jot/internal/state"
)

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closeLog, err := app.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := app.openBook(ctx, cmd, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := state.InitWithDir(app.cfg.Store.Dir); err != nil {
		logger.Warn("state: load failed", "error", err)
	}

	opts := []tui.Option{
		tui.WithContext(ctx),
		tui.WithLogger(logger),
	}
	if s.loadErr != nil {
		opts = append(opts, tui.WithStartupError(s.loadErr))
	}
	if app.cfg.UI.Watch {
		if path, ok := s.persister.WatchPath(); ok {
			opts = append(opts, tui.WithWatch(path, s.persister.Ours))
		}
	}

	logger.Info("jot: starting", "backend", app.cfg.Store.Backend, "notes", s.book.Len())
	p := tea.NewProgram(tui.New(s.book, app.cfg, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
