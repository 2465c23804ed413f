package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the resolved bindings for the view.
type KeyMap struct {
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Up          key.Binding
	Down        key.Binding
	ToggleTheme key.Binding
	Copy        key.Binding
	Preview     key.Binding
	Help        key.Binding
	Quit        key.Binding

	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	FormQuit  key.Binding
}

// New builds the key map from DefaultBindings. overrides maps a command
// (optionally prefixed "form." for the form context) to a comma-separated
// list of keys that replaces the defaults for that command.
func New(overrides map[string]string) KeyMap {
	type entry struct {
		keys []string
		desc string
	}
	byCmd := map[string]*entry{}
	for _, b := range DefaultBindings() {
		id := b.Command
		if b.Context == ContextForm {
			id = ContextForm + "." + b.Command
		}
		e, ok := byCmd[id]
		if !ok {
			e = &entry{}
			byCmd[id] = e
		}
		e.keys = append(e.keys, b.Key)
		if b.Description != "" {
			e.desc = b.Description
		}
	}

	for id, v := range overrides {
		e, ok := byCmd[id]
		if !ok {
			continue
		}
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) > 0 {
			e.keys = keys
		}
	}

	bind := func(id string) key.Binding {
		e := byCmd[id]
		return key.NewBinding(
			key.WithKeys(e.keys...),
			key.WithHelp(helpKeys(e.keys), e.desc),
		)
	}

	return KeyMap{
		New:         bind(CmdNew),
		Edit:        bind(CmdEdit),
		Delete:      bind(CmdDelete),
		Search:      bind(CmdSearch),
		ClearSearch: bind(CmdClearSearch),
		Up:          bind(CmdCursorUp),
		Down:        bind(CmdCursorDown),
		ToggleTheme: bind(CmdToggleTheme),
		Copy:        bind(CmdCopy),
		Preview:     bind(CmdPreview),
		Help:        bind(CmdHelp),
		Quit:        bind(CmdQuit),

		Submit:    bind(ContextForm + "." + CmdSubmit),
		Cancel:    bind(ContextForm + "." + CmdCancel),
		NextField: bind(ContextForm + "." + CmdNextField),
		FormQuit:  bind(ContextForm + "." + CmdQuit),
	}
}

// helpKeys renders keys for the help line: "e/enter", "↑/k".
func helpKeys(keys []string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		}
		out = append(out, k)
	}
	return strings.Join(out, "/")
}

// ListHelp is the help.KeyMap for the note list.
type ListHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (h ListHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.New, h.Edit, h.Delete, h.Search, h.ToggleTheme, h.Help, h.Quit}
}

// FullHelp implements help.KeyMap.
func (h ListHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Up, h.Down, h.Edit, h.Delete},
		{h.New, h.Search, h.ClearSearch, h.Copy},
		{h.ToggleTheme, h.Preview, h.Help, h.Quit},
	}
}

// FormHelp is the help.KeyMap for the create/edit form.
type FormHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (h FormHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Submit, h.NextField, h.Cancel}
}

// FullHelp implements help.KeyMap.
func (h FormHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
