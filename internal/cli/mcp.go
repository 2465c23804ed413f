package cli

import (
	"github.com/spf13/cobra"

	jotmcp "github.com/marcus/jot/internal/mcp"
	"github.com/marcus/jot/internal/version"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the note tools over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs stay on stderr.
			s, err := app.openBook(cmd.Context(), cmd, app.logger)
			if err != nil {
				return err
			}
			defer s.Close()

			app.logger.Info("mcp: serving", "backend", app.cfg.Store.Backend, "notes", s.book.Len())
			return jotmcp.Serve(jotmcp.NewServer(s.book, version.String(), app.logger))
		},
	}
}
