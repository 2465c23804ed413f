package styles

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// hexColor matches #RRGGBB or #RRGGBBAA.
var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// Palette is one full set of view colors.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string

	Success string
	Warning string
	Error   string

	TextPrimary   string
	TextSecondary string
	TextMuted     string
	TextSubtle    string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	BorderNormal string
	BorderActive string

	// Glamour style name for the preview pane
	MarkdownTheme string
}

// fields maps config override keys to palette entries.
func (p *Palette) fields() map[string]*string {
	return map[string]*string{
		"primary":       &p.Primary,
		"secondary":     &p.Secondary,
		"accent":        &p.Accent,
		"success":       &p.Success,
		"warning":       &p.Warning,
		"error":         &p.Error,
		"textPrimary":   &p.TextPrimary,
		"textSecondary": &p.TextSecondary,
		"textMuted":     &p.TextMuted,
		"textSubtle":    &p.TextSubtle,
		"bgPrimary":     &p.BgPrimary,
		"bgSecondary":   &p.BgSecondary,
		"bgTertiary":    &p.BgTertiary,
		"borderNormal":  &p.BorderNormal,
		"borderActive":  &p.BorderActive,
		"markdownTheme": &p.MarkdownTheme,
	}
}

// set applies one override. Unknown keys and non-hex colors are rejected.
func (p *Palette) set(key, value string) bool {
	dst, ok := p.fields()[key]
	if !ok {
		return false
	}
	if key != "markdownTheme" && !IsValidHexColor(value) {
		return false
	}
	*dst = value
	return true
}

// Built-in palettes, keyed by mode name.
var (
	DarkPalette = Palette{
		Primary:   "#7C3AED", // Purple
		Secondary: "#3B82F6", // Blue
		Accent:    "#F59E0B", // Amber

		Success: "#10B981",
		Warning: "#F59E0B",
		Error:   "#EF4444",

		TextPrimary:   "#F9FAFB",
		TextSecondary: "#9CA3AF",
		TextMuted:     "#6B7280",
		TextSubtle:    "#4B5563",

		BgPrimary:   "#111827",
		BgSecondary: "#1F2937",
		BgTertiary:  "#374151",

		BorderNormal: "#374151",
		BorderActive: "#7C3AED",

		MarkdownTheme: "dark",
	}

	LightPalette = Palette{
		Primary:   "#6D28D9",
		Secondary: "#2563EB",
		Accent:    "#B45309",

		Success: "#047857",
		Warning: "#B45309",
		Error:   "#B91C1C",

		TextPrimary:   "#111827",
		TextSecondary: "#374151",
		TextMuted:     "#6B7280",
		TextSubtle:    "#9CA3AF",

		BgPrimary:   "#FFFFFF",
		BgSecondary: "#F3F4F6",
		BgTertiary:  "#E5E7EB",

		BorderNormal: "#D1D5DB",
		BorderActive: "#6D28D9",

		MarkdownTheme: "light",
	}

	palettes = map[string]Palette{
		"dark":  DarkPalette,
		"light": LightPalette,
	}
)

// current is the applied palette name. Only the update loop writes it.
var current = "dark"

// IsValidHexColor reports whether hex is #RRGGBB or #RRGGBBAA.
func IsValidHexColor(hex string) bool {
	return hexColor.MatchString(hex)
}

// Current returns the name of the applied palette.
func Current() string {
	return current
}

// Apply switches to the named palette (dark when unknown), layers the
// overrides on a copy and rebuilds every style. It returns the override keys
// that were ignored, sorted.
func Apply(name string, overrides map[string]string) []string {
	p, ok := palettes[name]
	if !ok {
		name, p = "dark", DarkPalette
	}

	var ignored []string
	for k, v := range overrides {
		if !p.set(k, v) {
			ignored = append(ignored, k)
		}
	}
	sort.Strings(ignored)

	applyPalette(p)
	current = name
	return ignored
}

// applyPalette updates the color variables and rebuilds the styles. Call it
// from the update loop or before the program starts.
func applyPalette(c Palette) {
	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	// Badge and toast text pick whichever of black/white reads better
	OnPrimary = lipgloss.Color(ReadableOn(c.Primary))
	OnSuccess = lipgloss.Color(ReadableOn(c.Success))
	OnError = lipgloss.Color(ReadableOn(c.Error))

	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(OnPrimary).
		Background(Primary).
		Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(OnSuccess).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(OnError).
		Bold(true).
		Padding(0, 1)

	FieldError = lipgloss.NewStyle().
		Foreground(Error)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	SearchBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	SearchBoxFocused = SearchBox.
		BorderForeground(BorderActive)

	InputBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	InputBoxFocused = InputBox.
		BorderForeground(BorderActive)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted)

	Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderNormal)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(BgSecondary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	EmptyTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
}

// GetMarkdownTheme returns the current markdown rendering theme name
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
