// Package theme resolves and toggles the light/dark mode of the view.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/styles"
)

// Mode is the view's color mode.
type Mode int

const (
	Dark Mode = iota
	Light
)

// String returns the style registry name for the mode.
func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Icon is the header indicator for the mode.
func (m Mode) Icon() string {
	if m == Light {
		return "☀"
	}
	return "☾"
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Detector reports whether the terminal background is dark.
type Detector func() bool

// Resolve picks the initial mode from the ui.theme setting. "auto" asks
// detect (lipgloss.HasDarkBackground when nil), which itself answers dark
// when the terminal does not say.
func Resolve(setting string, detect Detector) Mode {
	switch setting {
	case config.ThemeLight:
		return Light
	case config.ThemeDark:
		return Dark
	}
	if detect == nil {
		detect = lipgloss.HasDarkBackground
	}
	if detect() {
		return Dark
	}
	return Light
}

// Apply swaps the style palette to the mode, layering color overrides. It
// returns the override keys that were ignored.
func Apply(m Mode, overrides map[string]string) []string {
	return styles.Apply(m.String(), overrides)
}
