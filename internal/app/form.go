package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/jot/internal/notes"
	"github.com/marcus/jot/internal/styles"
)

// Form fields in tab order.
const (
	fieldTitle = iota
	fieldContent
	fieldCount
)

const (
	formMaxWidth    = 72
	formBodyHeight  = 8
	formSideMargins = 8
)

// form is the create/edit dialog. editID is empty when creating.
type form struct {
	open   bool
	editID string
	title  textinput.Model
	body   textarea.Model
	focus  int
	err    string
}

func newForm() form {
	ti := textinput.New()
	ti.Placeholder = "Enter note title..."
	ti.Prompt = ""
	// No limit: SetValue would cut longer titles created from the CLI or MCP.
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Write your note here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(formBodyHeight)

	return form{title: ti, body: ta}
}

// restyle applies the current palette to both fields.
func (f *form) restyle() {
	f.title.PromptStyle = styles.Muted
	f.title.PlaceholderStyle = styles.Subtle
	f.title.TextStyle = styles.Body
	f.title.Cursor.Style = styles.ListCursor

	f.body.FocusedStyle = textarea.Style{
		Base:             lipgloss.NewStyle(),
		CursorLine:       lipgloss.NewStyle(),
		CursorLineNumber: styles.Muted,
		EndOfBuffer:      styles.Subtle,
		LineNumber:       styles.Muted,
		Placeholder:      styles.Subtle,
		Prompt:           lipgloss.NewStyle(),
		Text:             styles.Body,
	}
	f.body.BlurredStyle = f.body.FocusedStyle
}

// openCreate shows an empty form.
func (f *form) openCreate() tea.Cmd {
	f.reset()
	f.open = true
	return f.setFocus(fieldTitle)
}

// openEdit shows the form filled with n.
func (f *form) openEdit(n notes.Note) tea.Cmd {
	f.reset()
	f.open = true
	f.editID = n.ID
	f.title.SetValue(n.Title)
	f.title.CursorEnd()
	f.body.SetValue(n.Content)
	return f.setFocus(fieldTitle)
}

// reset clears the buffer and error and hides the form.
func (f *form) reset() {
	f.open = false
	f.editID = ""
	f.err = ""
	f.title.Reset()
	f.body.Reset()
	f.title.Blur()
	f.body.Blur()
	f.focus = fieldTitle
}

func (f *form) setFocus(field int) tea.Cmd {
	f.focus = field
	if field == fieldTitle {
		f.body.Blur()
		return f.title.Focus()
	}
	f.title.Blur()
	return f.body.Focus()
}

func (f *form) nextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// input returns the raw field values.
func (f *form) input() notes.Input {
	return notes.Input{Title: f.title.Value(), Content: f.body.Value()}
}

// editing reports whether the form targets an existing note.
func (f *form) editing() bool {
	return f.editID != ""
}

// update forwards msg to the focused field. Typing clears a stale error.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldTitle {
		before := f.title.Value()
		f.title, cmd = f.title.Update(msg)
		if f.title.Value() != before {
			f.err = ""
		}
		return cmd
	}
	f.body, cmd = f.body.Update(msg)
	return cmd
}

// view renders the dialog at the given outer width.
func (f *form) view(width int, hint string) string {
	inner := width - 10 // dialog border and padding, then field border and padding
	if inner < 10 {
		inner = 10
	}
	f.title.Width = inner - 1
	f.body.SetWidth(inner)

	box := func(field int, content string) string {
		s := styles.InputBox
		if f.focus == field {
			s = styles.InputBoxFocused
		}
		return s.Width(inner + 2).Render(content)
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(box(fieldTitle, f.title.View()))
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(styles.FieldError.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.Subtitle.Render("Content"))
	b.WriteString("\n")
	b.WriteString(box(fieldContent, f.body.View()))
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}
	return b.String()
}

// formWidth is the dialog width for a terminal of the given width.
func formWidth(termWidth int) int {
	w := termWidth - formSideMargins
	if w > formMaxWidth {
		w = formMaxWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}
