package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/jot/internal/keymap"
	"github.com/marcus/jot/internal/notes"
	"github.com/marcus/jot/internal/styles"
	"github.com/marcus/jot/internal/ui"
)

const tagline = "Organize your thoughts and ideas"

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.size()

	header := m.renderHeader(width)
	search := m.renderSearch(width)
	footer := m.renderFooter(width)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(search) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderBody(width, bodyHeight))

	screen := lipgloss.JoinVertical(lipgloss.Left, header, search, body, footer)
	if !m.form.open {
		return screen
	}

	w := formWidth(width)
	title := "New Note"
	if m.form.editing() {
		title = "Edit Note"
	}
	hint := m.help.ShortHelpView(keymap.FormHelp{KeyMap: m.keys}.ShortHelp())
	dialog := ui.Dialog(title, m.form.view(w, hint), w)
	return ui.OverlayModal(screen, dialog, width, height)
}

// size returns the terminal size, with a default before the first
// WindowSizeMsg.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m Model) renderHeader(width int) string {
	left := styles.Logo.Render("My Notes") + "  " + styles.Subtitle.Render(tagline)
	icon := styles.Muted.Render(m.mode.Icon() + " " + m.mode.String())

	gap := width - lipgloss.Width(left) - lipgloss.Width(icon)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(width).Render(left + strings.Repeat(" ", gap) + icon)
}

func (m Model) renderSearch(width int) string {
	box := styles.SearchBox
	if m.search.Focused() {
		box = styles.SearchBoxFocused
	}
	return box.Width(width - 2).Render(m.search.View())
}

// renderBody lays out the list and, on wide terminals, the preview pane.
func (m Model) renderBody(width, height int) string {
	if m.book.Len() == 0 {
		return renderEmpty(width, height, "No notes yet", "Create your first note to get started")
	}

	stats := m.renderStats()
	listHeight := height - 1

	if len(m.visible) == 0 {
		return stats + "\n" + renderEmpty(width, listHeight, "No notes found", "Try adjusting your search terms")
	}

	n, ok := m.selected()
	if !m.showPreview || width < minPreviewWidth || !ok {
		return stats + "\n" + m.renderList(width, listHeight)
	}

	listWidth := width * 2 / 5
	previewWidth := width - listWidth - 1
	list := m.renderList(listWidth, listHeight)
	preview := renderPreview(n, previewWidth, listHeight)
	return stats + "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list), " ", preview)
}

// renderStats is "N of M notes", plus the active filter.
func (m Model) renderStats() string {
	s := fmt.Sprintf("%d of %d notes", len(m.visible), m.book.Len())
	if m.query != "" {
		s += "  " + fmt.Sprintf("Filtered by: %q", m.query)
	}
	return styles.Muted.Render(s)
}

func (m Model) renderList(width, height int) string {
	rows := height / (rowHeight + 1)
	if rows < 1 {
		rows = 1
	}
	start := m.offset
	end := min(start+rows, len(m.visible))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderRow(m.visible[i], i == m.cursor, width))
	}
	return b.String()
}

// renderRow draws one note: title with badge, excerpt, timestamps.
func (m Model) renderRow(n notes.Note, selected bool, width int) string {
	marker := "  "
	titleStyle := styles.ListItemNormal
	if selected {
		marker = styles.ListCursor.Render("▸ ")
		titleStyle = styles.ListItemSelected.Bold(true)
	}

	textWidth := width - 2
	badge := ""
	if n.Edited() {
		badge = " " + styles.Badge.Render("edited")
	}
	title := ui.Truncate(n.Title, textWidth-lipgloss.Width(badge))
	line1 := marker + titleStyle.Render(title) + badge

	excerpt := ui.FirstLine(n.Content)
	if excerpt == "" {
		excerpt = "(empty)"
	}
	line2 := "  " + styles.Muted.Render(ui.PadRight(excerpt, textWidth))

	stamps := "Created " + m.formatTime(n.CreatedAt)
	if n.Edited() {
		stamps += " · Updated " + m.formatTime(n.UpdatedAt)
	}
	line3 := "  " + styles.Subtle.Render(ui.Truncate(stamps, textWidth))

	return line1 + "\n" + line2 + "\n" + line3
}

func (m Model) formatTime(t time.Time) string {
	return t.Local().Format(m.cfg.UI.DateFormat)
}

// renderPreview shows the note rendered as markdown in a panel.
func renderPreview(n notes.Note, width, height int) string {
	inner := width - 4 // border and padding
	content := renderMarkdown(n.Content, inner)
	if content == "" {
		content = styles.Subtle.Render("No content")
	}
	title := styles.Title.Render(ui.Truncate(n.Title, inner))

	lines := strings.Split(title+"\n\n"+content, "\n")
	if limit := height - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return styles.PanelInactive.
		Width(width - 2).
		Height(max(height-2, 1)).
		Render(strings.Join(lines, "\n"))
}

func renderEmpty(width, height int, title, hint string) string {
	msg := styles.EmptyTitle.Render(title) + "\n" + styles.Muted.Render(hint)
	return lipgloss.Place(width, max(height, 2), lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderFooter(width int) string {
	var toast string
	if m.toast != "" {
		st := styles.ToastSuccess
		if m.toastErr {
			st = styles.ToastError
		}
		toast = st.Render(ui.Truncate(m.toast, width-2))
	}

	var keys string
	if m.form.open {
		keys = m.help.View(keymap.FormHelp{KeyMap: m.keys})
	} else {
		keys = m.help.View(keymap.ListHelp{KeyMap: m.keys})
	}
	return toast + "\n" + styles.Footer.Render(keys)
}
