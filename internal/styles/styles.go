// Package styles holds the color palette and lipgloss styles for the view.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors of the applied palette. Apply replaces them.
var (
	Primary, Secondary, Accent lipgloss.Color
	Success, Warning, Error    lipgloss.Color

	TextPrimary, TextSecondary, TextMuted, TextSubtle lipgloss.Color

	BgPrimary, BgSecondary, BgTertiary lipgloss.Color
	BorderNormal, BorderActive         lipgloss.Color

	// Text drawn on filled backgrounds
	OnPrimary, OnSuccess, OnError lipgloss.Color

	// Glamour style name
	CurrentMarkdownTheme string
)

// Styles rebuilt from the palette on every Apply.
var (
	// Preview pane border
	PanelInactive lipgloss.Style

	Title, Subtitle, Body, Muted, Subtle lipgloss.Style
	Logo, Badge                          lipgloss.Style

	ToastSuccess, ToastError, FieldError lipgloss.Style

	// Note list rows
	ListItemNormal, ListItemSelected, ListCursor lipgloss.Style

	SearchBox, SearchBoxFocused lipgloss.Style
	InputBox, InputBoxFocused   lipgloss.Style

	Header, Footer lipgloss.Style

	ModalBox, ModalTitle, EmptyTitle lipgloss.Style
)

func init() {
	applyPalette(DarkPalette)
}
