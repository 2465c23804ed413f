// Package cli wires the jot commands: the interactive view by default, plus
// scriptable note commands, export and the MCP server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/notes"
	"github.com/marcus/jot/internal/storage"
	"github.com/marcus/jot/internal/version"
)

// App holds global flags and the resolved configuration.
type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	EnvFile    string
	Debug      bool
	PrettyJSON bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the jot command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "jot",
		Short:         "Terminal notes: create, edit, search",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive view
  jot

  # Scriptable commands
  jot add --title "Groceries" --content "Milk, eggs"
  jot search milk --pretty
  jot export --format html -o notes.html
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default ~/.config/jot/config.json)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Store directory (overrides store.dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Store backend: file, sqlite or mongo (overrides store.backend)")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "Dotenv file with JOT_* overrides (missing is fine)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newMCPCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup loads the env file and config, applies flag overrides and builds
// the stderr logger.
func (app *App) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(app.EnvFile); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.Dir != "" {
		cfg.Store.Dir = config.ExpandPath(app.Dir)
	}
	if app.Backend != "" {
		cfg.Store.Backend = strings.ToLower(app.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = newLogger(cmd.ErrOrStderr(), app.Debug)
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// fileLogger logs to <store dir>/jot.log, for when the view owns the
// terminal.
func (app *App) fileLogger() (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(app.cfg.Store.Dir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(app.cfg.Store.Dir, "jot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, app.Debug), f.Close, nil
}

// session is an opened store and the book loaded from it.
type session struct {
	kv        storage.KV
	persister *storage.KVPersister
	book      *notes.Book
	// loadErr is a recoverable load failure; the book started empty.
	loadErr error
}

func (s *session) Close() error {
	return s.kv.Close()
}

// openBook opens the configured store and loads the notes. A load failure
// is reported on stderr and the book starts empty; the stored value is set
// aside before anything is written over it.
func (app *App) openBook(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (*session, error) {
	kv, err := storage.Open(ctx, app.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", app.cfg.Store.Backend, err)
	}
	p := storage.NewPersister(kv, app.cfg.Store.Key, storage.WithTimeout(app.cfg.Store.Timeout))

	book, err := notes.Open(ctx, p, notes.WithLogger(logger))
	s := &session{kv: kv, persister: p, book: book}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; starting with no notes (the stored value is kept aside on the next save)\n", err)
		s.loadErr = err
	}
	return s, nil
}

// withBook opens the store, runs fn and closes the store.
func (app *App) withBook(cmd *cobra.Command, fn func(*notes.Book) error) error {
	s, err := app.openBook(cmd.Context(), cmd, app.logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.book)
}

func writeJSON(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
