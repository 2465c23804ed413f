package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/jot/internal/export"
	"github.com/marcus/jot/internal/notes"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		formatFlag string
		output     string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without --format, an .html output path picks HTML.
			if !cmd.Flags().Changed("format") && output != "" {
				formatFlag = filepath.Ext(output)
				if len(formatFlag) > 0 {
					formatFlag = formatFlag[1:]
				}
				if _, err := export.ParseFormat(formatFlag); err != nil {
					formatFlag = string(export.FormatMarkdown)
				}
			}
			f, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			opts := export.Options{
				DateFormat: app.cfg.UI.DateFormat,
				Location:   time.Local,
				Title:      title,
			}
			return app.withBook(cmd, func(b *notes.Book) error {
				if output == "" {
					return export.Write(cmd.OutOrStdout(), f, b.All(), opts)
				}
				var buf bytes.Buffer
				if err := export.Write(&buf, f, b.All(), opts); err != nil {
					return err
				}
				if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
					return err
				}
				app.logger.Info("export: written", "path", output, "format", string(f), "notes", b.Len())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "md", "Output format: md or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default \"Notes\")")
	return cmd
}
