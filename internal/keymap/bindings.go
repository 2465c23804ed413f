// Package keymap defines the key bindings of the view and their help text.
package keymap

// Contexts in which bindings apply.
const (
	ContextList = "list"
	ContextForm = "form"
)

// Commands bound to keys.
const (
	CmdNew         = "new"
	CmdEdit        = "edit"
	CmdDelete      = "delete"
	CmdSearch      = "search"
	CmdClearSearch = "clear-search"
	CmdCursorUp    = "cursor-up"
	CmdCursorDown  = "cursor-down"
	CmdToggleTheme = "toggle-theme"
	CmdCopy        = "copy"
	CmdPreview     = "toggle-preview"
	CmdHelp        = "help"
	CmdQuit        = "quit"

	CmdSubmit    = "submit"
	CmdCancel    = "cancel"
	CmdNextField = "next-field"
)

// Binding maps a key to a command in a context.
type Binding struct {
	Key         string
	Command     string
	Context     string
	Description string
}

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// List context
		{Key: "n", Command: CmdNew, Context: ContextList, Description: "new note"},
		{Key: "e", Command: CmdEdit, Context: ContextList, Description: "edit"},
		{Key: "enter", Command: CmdEdit, Context: ContextList},
		{Key: "d", Command: CmdDelete, Context: ContextList, Description: "delete"},
		{Key: "x", Command: CmdDelete, Context: ContextList},
		{Key: "/", Command: CmdSearch, Context: ContextList, Description: "search"},
		{Key: "esc", Command: CmdClearSearch, Context: ContextList, Description: "clear search"},
		{Key: "k", Command: CmdCursorUp, Context: ContextList, Description: "up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextList},
		{Key: "j", Command: CmdCursorDown, Context: ContextList, Description: "down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextList},
		{Key: "t", Command: CmdToggleTheme, Context: ContextList, Description: "theme"},
		{Key: "y", Command: CmdCopy, Context: ContextList, Description: "copy"},
		{Key: "p", Command: CmdPreview, Context: ContextList, Description: "preview"},
		{Key: "?", Command: CmdHelp, Context: ContextList, Description: "help"},
		{Key: "q", Command: CmdQuit, Context: ContextList, Description: "quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextList},

		// Form context (create/edit dialog)
		{Key: "ctrl+s", Command: CmdSubmit, Context: ContextForm, Description: "save"},
		{Key: "esc", Command: CmdCancel, Context: ContextForm, Description: "cancel"},
		{Key: "tab", Command: CmdNextField, Context: ContextForm, Description: "next field"},
		{Key: "shift+tab", Command: CmdNextField, Context: ContextForm},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextForm},
	}
}
