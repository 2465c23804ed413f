package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/jot/internal/notes"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all notes as JSON, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withBook(cmd, func(b *notes.Book) error {
				return writeJSON(cmd, app, b.All())
			})
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Print notes whose title or content contains the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withBook(cmd, func(b *notes.Book) error {
				return writeJSON(cmd, app, b.Search(args[0]))
			})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withBook(cmd, func(b *notes.Book) error {
				n, err := b.Create(cmd.Context(), notes.Input{Title: title, Content: content})
				if err != nil {
					return err
				}
				return writeJSON(cmd, app, n)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note; omitted fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return app.withBook(cmd, func(b *notes.Book) error {
				cur, ok := b.Get(id)
				if !ok {
					return fmt.Errorf("%w: %s", notes.ErrNotFound, id)
				}
				in := notes.Input{Title: cur.Title, Content: cur.Content}
				if cmd.Flags().Changed("title") {
					in.Title = title
				}
				if cmd.Flags().Changed("content") {
					in.Content = content
				}

				n, ok, err := b.Edit(cmd.Context(), id, in)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: %s", notes.ErrNotFound, id)
				}
				return writeJSON(cmd, app, n)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	return cmd
}

type removedResult struct {
	Removed int      `json:"removed"`
	IDs     []string `json:"ids"`
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete notes; unknown ids are ignored",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withBook(cmd, func(b *notes.Book) error {
				res := removedResult{IDs: []string{}}
				for _, id := range args {
					removed, err := b.Delete(cmd.Context(), id)
					if err != nil {
						return err
					}
					if removed {
						res.Removed++
						res.IDs = append(res.IDs, id)
					}
				}
				return writeJSON(cmd, app, res)
			})
		},
	}
}
