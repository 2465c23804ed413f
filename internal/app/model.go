// Package app is the interactive note view.
package app

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/keymap"
	appmsg "github.com/marcus/jot/internal/msg"
	"github.com/marcus/jot/internal/notes"
	"github.com/marcus/jot/internal/state"
	"github.com/marcus/jot/internal/styles"
	"github.com/marcus/jot/internal/theme"
)

// Layout constants.
const (
	headerHeight    = 3
	searchHeight    = 3
	footerHeight    = 2
	rowHeight       = 3 // title line, excerpt line, timestamps line
	minPreviewWidth = 100
)

// Model is the root Bubble Tea model of the note view.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	book   *notes.Book
	logger *slog.Logger

	keys keymap.KeyMap
	help help.Model

	// Search
	search  textinput.Model
	query   string
	visible notes.Notes
	cursor  int
	offset  int

	// Theme
	mode   theme.Mode
	detect theme.Detector

	form        form
	showPreview bool

	// Toast
	toast    string
	toastErr bool
	toastSeq int

	// External changes
	watchPath string
	watchOurs func([]byte) bool
	changes   <-chan struct{}

	copyFn func(string) error
	notice error

	width, height int
	quitting      bool
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context for persistence calls and the watcher.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithWatch watches path for external changes, skipping writes for which
// ours returns true.
func WithWatch(path string, ours func([]byte) bool) Option {
	return func(m *Model) {
		m.watchPath = path
		m.watchOurs = ours
	}
}

// WithDetector overrides terminal background detection for the auto theme.
func WithDetector(d theme.Detector) Option {
	return func(m *Model) { m.detect = d }
}

// WithClipboard overrides the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyFn = fn }
}

// WithStartupError shows err as an error toast once the view starts.
func WithStartupError(err error) Option {
	return func(m *Model) { m.notice = err }
}

// New creates the view over book.
func New(book *notes.Book, cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		ctx:         context.Background(),
		cfg:         cfg,
		book:        book,
		logger:      slog.Default(),
		keys:        keymap.New(cfg.Keymap.Overrides),
		help:        help.New(),
		showPreview: cfg.UI.ShowPreview && !state.GetHidePreview(),
		copyFn:      clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.mode = theme.Resolve(cfg.UI.Theme, m.detect)
	if ignored := theme.Apply(m.mode, cfg.UI.Colors); len(ignored) > 0 {
		m.logger.Warn("app: ignored color overrides", "keys", ignored)
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search notes..."
	m.search.Prompt = "⌕ "
	m.search.CharLimit = 200
	m.form = newForm()
	m.restyleInputs()

	m.refresh()
	m.selectID(state.GetSelectedNote())
	return m
}

// Init reports a startup error and starts the file watcher when one is
// configured.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.notice != nil {
		cmds = append(cmds, appmsg.ShowError(m.notice))
	}
	if m.watchPath != "" {
		cmds = append(cmds, startWatch(m.ctx, m.watchPath, m.watchOurs, m.logger))
	}
	return tea.Batch(cmds...)
}

// restyleInputs rebuilds input styles after the palette changes.
func (m *Model) restyleInputs() {
	m.search.PromptStyle = styles.Muted
	m.search.PlaceholderStyle = styles.Subtle
	m.search.TextStyle = styles.Body
	m.search.Cursor.Style = styles.ListCursor
	m.form.restyle()
	m.help.Styles.ShortKey = styles.Muted
	m.help.Styles.ShortDesc = styles.Subtle
	m.help.Styles.FullKey = styles.Muted
	m.help.Styles.FullDesc = styles.Subtle
	m.help.Styles.ShortSeparator = styles.Subtle
	m.help.Styles.FullSeparator = styles.Subtle
}

// refresh recomputes the visible notes from the book and the query, keeping
// the cursor on the same note when it is still visible.
func (m *Model) refresh() {
	selected := m.selectedID()
	m.visible = m.book.Search(m.query)
	m.cursor = 0
	m.offset = 0
	m.selectID(selected)
}

// selectID moves the cursor to the note with id when it is visible.
func (m *Model) selectID(id string) {
	if id == "" {
		m.clampCursor()
		return
	}
	if i := m.visible.Index(id); i >= 0 {
		m.cursor = i
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the list so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listRows is how many notes fit in the list pane.
func (m *Model) listRows() int {
	if m.height == 0 {
		return 10
	}
	h := m.height - headerHeight - searchHeight - footerHeight - 1
	if len(m.visible) > 0 || m.book.Len() > 0 {
		h-- // stats line
	}
	if n := h / (rowHeight + 1); n > 0 {
		return n
	}
	return 1
}

// selected returns the note under the cursor.
func (m *Model) selected() (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return notes.Note{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) selectedID() string {
	if n, ok := m.selected(); ok {
		return n.ID
	}
	return ""
}

// rememberSelection stores the cursor note for the next run.
func (m *Model) rememberSelection() {
	if err := state.SetSelectedNote(m.selectedID()); err != nil {
		m.logger.Debug("app: save state", "error", err)
	}
}

// Mode returns the current theme mode.
func (m Model) Mode() theme.Mode {
	return m.mode
}

// Query returns the active search query.
func (m Model) Query() string {
	return m.query
}

// Visible returns the notes currently listed.
func (m Model) Visible() notes.Notes {
	return m.visible.Clone()
}
