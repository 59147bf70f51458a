// Package input provides the query input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput as the query field.
type SearchInput struct {
	model  textinput.Model
	styles *styles.Styles
}

// NewSearchInput creates a focused query input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search your CRM..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &SearchInput{model: ti, styles: s}
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the underlying textinput.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the framed input field.
func (s *SearchInput) View() string {
	return s.styles.InputField.Render(s.model.View())
}

// Value returns the current query text.
func (s *SearchInput) Value() string {
	return s.model.Value()
}

// SetValue replaces the query text.
func (s *SearchInput) SetValue(value string) {
	s.model.SetValue(value)
}

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.model.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.model.Blur()
}

// Focused reports whether the input has keyboard focus.
func (s *SearchInput) Focused() bool {
	return s.model.Focused()
}

// SetWidth sizes the field to the terminal width, leaving room for the
// frame and prompt.
func (s *SearchInput) SetWidth(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	s.model.Width = w
}
