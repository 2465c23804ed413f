package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDefaults(t *testing.T) {
	km := New(nil)

	tests := []struct {
		key     string
		binding key.Binding
		name    string
	}{
		{"n", km.New, "new"},
		{"e", km.Edit, "edit"},
		{"enter", km.Edit, "edit via enter"},
		{"d", km.Delete, "delete"},
		{"x", km.Delete, "delete via x"},
		{"/", km.Search, "search"},
		{"t", km.ToggleTheme, "theme"},
		{"y", km.Copy, "copy"},
		{"q", km.Quit, "quit"},
		{"ctrl+s", km.Submit, "submit"},
		{"esc", km.Cancel, "cancel"},
		{"tab", km.NextField, "next field"},
	}
	for _, tt := range tests {
		if !key.Matches(press(tt.key), tt.binding) {
			t.Errorf("%s: key %q did not match", tt.name, tt.key)
		}
	}
}

func TestOverrides(t *testing.T) {
	km := New(map[string]string{
		CmdNew:              "a, ctrl+n",
		"form." + CmdSubmit: "ctrl+s,alt+enter",
		"unknown-command":   "z",
		CmdDelete:           " , ",
	})

	if key.Matches(press("n"), km.New) {
		t.Error("override should replace default 'n'")
	}
	if !key.Matches(press("a"), km.New) {
		t.Error("override 'a' should match new")
	}
	if !key.Matches(press("d"), km.Delete) {
		t.Error("empty override should keep defaults")
	}
	if got := km.New.Help().Key; got != "a/ctrl+n" {
		t.Errorf("help key = %q, want a/ctrl+n", got)
	}
	if got := km.New.Help().Desc; got != "new note" {
		t.Errorf("help desc = %q, want 'new note'", got)
	}
}

func TestHelpKeys(t *testing.T) {
	if got := New(nil).Up.Help().Key; got != "k/↑" {
		t.Errorf("up help = %q, want k/↑", got)
	}
}

func TestHelpGroups(t *testing.T) {
	km := New(nil)
	if len(ListHelp{km}.ShortHelp()) == 0 || len(ListHelp{km}.FullHelp()) == 0 {
		t.Error("list help should not be empty")
	}
	if len(FormHelp{km}.ShortHelp()) != 3 {
		t.Errorf("form help has %d bindings, want 3", len(FormHelp{km}.ShortHelp()))
	}
}
