// Package styles provides the colour theme and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	// Accent colours headers and selections.
	Accent lipgloss.Color

	// Contrast colours highlighted snippet terms.
	Contrast lipgloss.Color

	// Text is the default foreground.
	Text lipgloss.Color

	// Faint is for secondary text and hints.
	Faint lipgloss.Color

	// Alert is for error text.
	Alert lipgloss.Color

	// Frame is the border colour.
	Frame lipgloss.Color

	// Surface is the status bar background.
	Surface lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:   lipgloss.Color("#5EEAD4"), // teal
		Contrast: lipgloss.Color("#FBBF24"), // amber
		Text:     lipgloss.Color("#E7E5E4"),
		Faint:    lipgloss.Color("#78716C"),
		Alert:    lipgloss.Color("#F87171"),
		Frame:    lipgloss.Color("#44403C"),
		Surface:  lipgloss.Color("#1C1917"),
	}
}

// Styles holds the pre-configured lipgloss styles the views render with.
type Styles struct {
	theme *Theme

	// Title style for the application header.
	Title lipgloss.Style

	// Subtitle style for section headers and highlighted terms.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for secondary text.
	Muted lipgloss.Style

	// Selected style for the focused row.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for the query input frame.
	InputField lipgloss.Style

	// StatusBar style for the bottom bar.
	StatusBar lipgloss.Style

	// Border style for panels.
	Border lipgloss.Style
}

// NewStyles builds styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Contrast),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Faint),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Surface).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Alert),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Faint).
			Background(theme.Surface).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
