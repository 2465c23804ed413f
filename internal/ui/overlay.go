// Package ui provides layout helpers shared by the view: modal compositing
// and width-aware text fitting.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/jot/internal/styles"
)

// dimStyle greys out background content behind modals. Existing ANSI codes
// are stripped first because SGR 2 (faint) doesn't reliably combine with
// color codes in most terminals. The color follows the active palette.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.TextSubtle)
}

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim styling.
func dimLine(s string) string {
	return dimStyle().Render(ansi.Strip(s))
}

// compositeRow overlays modalLine onto bgLine at column startX:
// dimmed left segment, modal line, dimmed right segment.
func compositeRow(bgLine, modalLine string, startX, modalWidth, totalWidth int) string {
	var b strings.Builder
	dim := dimStyle()

	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	if startX > 0 {
		left := ansi.Truncate(stripped, startX, "")
		b.WriteString(dim.Render(left))
		if w := ansi.StringWidth(left); w < startX {
			b.WriteString(strings.Repeat(" ", startX-w))
		}
	}

	b.WriteString(modalLine)

	// Pad short modal rows so the right segment starts at a fixed column
	if w := ansi.StringWidth(modalLine); w < modalWidth {
		b.WriteString(strings.Repeat(" ", modalWidth-w))
	}

	rightX := startX + modalWidth
	if rightX < totalWidth && bgWidth > rightX {
		b.WriteString(dim.Render(ansi.Cut(stripped, rightX, bgWidth)))
	}

	return b.String()
}

// OverlayModal composites modal centered on top of a dimmed background of
// the given size.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	modalHeight := len(modalLines)
	startX := max((width-modalWidth)/2, 0)
	startY := max((height-modalHeight)/2, 0)

	rows := max(height, modalHeight)
	out := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		bgLine := ""
		if y < len(bgLines) {
			bgLine = bgLines[y]
		}
		if i := y - startY; i >= 0 && i < modalHeight {
			out = append(out, compositeRow(bgLine, modalLines[i], startX, modalWidth, width))
		} else {
			out = append(out, dimLine(bgLine))
		}
	}

	return strings.Join(out, "\n")
}

// Dialog renders a titled modal box of the given outer width.
func Dialog(title, body string, width int) string {
	box := styles.ModalBox
	if width > 0 {
		// Width excludes the border
		box = box.Width(max(width-2, 10))
	}
	return box.Render(styles.ModalTitle.Render(title) + "\n" + body)
}
