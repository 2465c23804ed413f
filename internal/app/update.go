package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	appmsg "github.com/marcus/jot/internal/msg"
	"github.com/marcus/jot/internal/notes"
	"github.com/marcus/jot/internal/state"
	"github.com/marcus/jot/internal/theme"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.form.open:
			return m.handleFormKey(msg)
		case m.search.Focused():
			return m.handleSearchKey(msg)
		default:
			return m.handleListKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-8, 10)
		m.ensureCursorVisible()
		return m, nil

	case appmsg.ToastMsg:
		return m, m.showToast(msg.Message, msg.IsError, msg.Duration)

	case appmsg.ToastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil

	case watchStartedMsg:
		m.changes = msg.changes
		m.logger.Debug("app: watching notes file", "path", m.watchPath)
		return m, waitForChange(m.changes)

	case watchFailedMsg:
		m.logger.Warn("app: watch failed", "path", m.watchPath, "error", msg.err)
		return m, nil

	case notesChangedMsg:
		return m, tea.Batch(m.reload(), waitForChange(m.changes))
	}

	// Forward cursor blinks and other messages to the focused input.
	var cmd tea.Cmd
	switch {
	case m.form.open:
		cmd = m.form.update(msg)
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// handleListKey handles keys while the note list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.rememberSelection()
		return m, tea.Quit

	case key.Matches(msg, m.keys.New):
		return m, m.form.openCreate()

	case key.Matches(msg, m.keys.Edit):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.form.openEdit(n)

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.query != "" {
			m.setQuery("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		if err := state.SetHidePreview(!m.showPreview); err != nil {
			m.logger.Debug("app: save state", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// handleSearchKey handles keys while the search input has focus. The query
// is applied on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.setQuery("")
		return m, nil
	case "enter", "tab":
		m.search.Blur()
		return m, nil
	case "up", "ctrl+p":
		m.moveCursor(-1)
		return m, nil
	case "down", "ctrl+n":
		m.moveCursor(1)
		return m, nil
	case "ctrl+c":
		m.quitting = true
		m.rememberSelection()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.refresh()
	}
	return m, cmd
}

// handleFormKey handles keys while the create/edit form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FormQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.form.reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitForm()

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.nextField()

	case msg.Type == tea.KeyEnter && m.form.focus == fieldTitle:
		return m, m.submitForm()
	}
	return m, m.form.update(msg)
}

// submitForm commits the form. Validation errors stay in the form; anything
// else closes it.
func (m *Model) submitForm() tea.Cmd {
	in := m.form.input()

	var (
		n    notes.Note
		err  error
		done string
	)
	if m.form.editing() {
		var ok bool
		n, ok, err = m.book.Edit(m.ctx, m.form.editID, in)
		if err == nil && !ok {
			// Target vanished, e.g. removed by an external reload.
			m.logger.Debug("app: edit target gone", "id", m.form.editID)
			m.form.reset()
			m.refresh()
			return nil
		}
		done = "Note updated"
	} else {
		n, err = m.book.Create(m.ctx, in)
		done = "Note created"
	}

	var verr *notes.ValidationError
	if errors.As(err, &verr) {
		m.form.err = verr.Message
		return m.form.setFocus(fieldTitle)
	}

	m.form.reset()
	m.refresh()
	m.selectID(n.ID)

	if err != nil {
		return appmsg.ShowError(err)
	}
	return appmsg.ShowToast(done, appmsg.ToastShort)
}

// deleteSelected removes the note under the cursor without confirmation.
func (m *Model) deleteSelected() tea.Cmd {
	n, ok := m.selected()
	if !ok {
		return nil
	}
	cursor := m.cursor
	_, err := m.book.Delete(m.ctx, n.ID)
	m.refresh()
	m.cursor = cursor
	m.clampCursor()
	if err != nil {
		return appmsg.ShowError(err)
	}
	return appmsg.ShowToast("Note deleted", appmsg.ToastShort)
}

// copySelected copies the selected note's content to the clipboard.
func (m *Model) copySelected() tea.Cmd {
	n, ok := m.selected()
	if !ok {
		return nil
	}
	if err := m.copyFn(n.Content); err != nil {
		m.logger.Debug("app: clipboard", "error", err)
		return appmsg.ShowError(fmt.Errorf("copy failed: %w", err))
	}
	return appmsg.ShowToast("Copied note content", appmsg.ToastShort)
}

// toggleTheme flips light/dark and restyles the inputs.
func (m *Model) toggleTheme() {
	m.mode = m.mode.Toggle()
	theme.Apply(m.mode, m.cfg.UI.Colors)
	m.restyleInputs()
	m.logger.Debug("app: theme", "mode", m.mode.String())
}

// reload re-reads the book after an external change.
func (m *Model) reload() tea.Cmd {
	err := m.book.Reload(m.ctx)
	m.refresh()
	if err != nil {
		return appmsg.ShowError(err)
	}
	m.logger.Debug("app: reloaded after external change", "count", m.book.Len())
	return nil
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.search.SetValue(q)
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// showToast displays a toast and schedules its expiry.
func (m *Model) showToast(text string, isErr bool, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = appmsg.ToastShort
	}
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return appmsg.ExpireToast(m.toastSeq, d)
}
