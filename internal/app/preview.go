package app

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/marcus/jot/internal/styles"
)

var (
	mdRendererMu sync.Mutex
	// Renderers keyed by style and wrap width. Building one is slow enough
	// to notice on every keystroke.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders note content for the preview pane in the current
// markdown style. It falls back to the raw text when glamour fails.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := styles.GetMarkdownTheme()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
