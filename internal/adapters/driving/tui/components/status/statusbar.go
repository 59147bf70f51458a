// Package status provides the bottom status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/keymap"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Bar displays the search state on the left and keybinding hints on
// the right. It is passive: the owning view drives it via setters.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	width       int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the bar at its configured width.
func (b *Bar) View() string {
	left := b.renderState()
	right := b.renderHints()

	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", gap) + right,
	)
}

func (b *Bar) renderState() string {
	switch b.state {
	case StateSearching:
		return b.styles.Muted.Render("Searching...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateResults:
		if b.resultCount == 0 {
			return b.styles.Muted.Render("No results")
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d results", b.resultCount))
	}
	return b.styles.Muted.Render("Ready")
}

// renderHints shows result-list bindings once results are on screen,
// the short set otherwise.
func (b *Bar) renderHints() string {
	bindings := b.keymap.ShortHelp()
	if b.state == StateResults && b.resultCount > 0 {
		bindings = b.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the reported state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the reported state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error message shown in the error state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetResultCount sets the result count shown in the results state.
func (b *Bar) SetResultCount(count int) {
	b.resultCount = count
}

// SetWidth sets the render width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
