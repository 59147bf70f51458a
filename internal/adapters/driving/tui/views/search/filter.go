package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/styles"
)

// dateLayout is the accepted format for the From/To fields.
const dateLayout = "2006-01-02"

// FilterPanel lets the user narrow a search by entity kind, date range
// and reranking before submitting.
type FilterPanel struct {
	styles *styles.Styles

	types   []string
	enabled map[string]bool

	rerank bool
	from   textinput.Model
	to     textinput.Model

	// cursor walks the type rows, then the rerank row, then the two
	// date rows.
	cursor  int
	visible bool
}

// NewFilterPanel creates a panel offering the given entity kinds, all
// enabled by default.
func NewFilterPanel(s *styles.Styles, types []string) *FilterPanel {
	if s == nil {
		s = styles.DefaultStyles()
	}

	enabled := make(map[string]bool, len(types))
	for _, t := range types {
		enabled[t] = true
	}

	from := textinput.New()
	from.Placeholder = dateLayout
	from.CharLimit = len(dateLayout)
	from.Width = len(dateLayout) + 2

	to := textinput.New()
	to.Placeholder = dateLayout
	to.CharLimit = len(dateLayout)
	to.Width = len(dateLayout) + 2

	return &FilterPanel{
		styles:  s,
		types:   types,
		enabled: enabled,
		from:    from,
		to:      to,
	}
}

// row indices past the type list.
func (f *FilterPanel) rerankRow() int { return len(f.types) }
func (f *FilterPanel) fromRow() int   { return len(f.types) + 1 }
func (f *FilterPanel) toRow() int     { return len(f.types) + 2 }
func (f *FilterPanel) lastRow() int   { return len(f.types) + 2 }

// Visible returns whether the panel is shown.
func (f *FilterPanel) Visible() bool {
	return f.visible
}

// Toggle shows or hides the panel.
func (f *FilterPanel) Toggle() {
	f.visible = !f.visible
	f.syncDateFocus()
}

// Update handles keyboard input while the panel is focused.
func (f *FilterPanel) Update(msg tea.KeyMsg) tea.Cmd {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		f.moveCursor(-1)
		return nil
	case tea.KeyDown, tea.KeyTab:
		f.moveCursor(1)
		return nil
	case tea.KeySpace:
		if !f.onDateRow() {
			f.toggleCurrent()
			return nil
		}
	}

	switch msg.String() {
	case "k":
		if !f.onDateRow() {
			f.moveCursor(-1)
			return nil
		}
	case "j":
		if !f.onDateRow() {
			f.moveCursor(1)
			return nil
		}
	}

	// Date rows take raw keystrokes.
	var cmd tea.Cmd
	switch f.cursor {
	case f.fromRow():
		f.from, cmd = f.from.Update(msg)
	case f.toRow():
		f.to, cmd = f.to.Update(msg)
	}
	return cmd
}

func (f *FilterPanel) moveCursor(delta int) {
	f.cursor += delta
	if f.cursor < 0 {
		f.cursor = f.lastRow()
	}
	if f.cursor > f.lastRow() {
		f.cursor = 0
	}
	f.syncDateFocus()
}

// syncDateFocus keeps exactly the date input under the cursor focused.
func (f *FilterPanel) syncDateFocus() {
	f.from.Blur()
	f.to.Blur()
	if !f.visible {
		return
	}
	switch f.cursor {
	case f.fromRow():
		f.from.Focus()
	case f.toRow():
		f.to.Focus()
	}
}

func (f *FilterPanel) onDateRow() bool {
	return f.cursor == f.fromRow() || f.cursor == f.toRow()
}

func (f *FilterPanel) toggleCurrent() {
	if f.cursor < len(f.types) {
		t := f.types[f.cursor]
		f.enabled[t] = !f.enabled[t]
		return
	}
	if f.cursor == f.rerankRow() {
		f.rerank = !f.rerank
	}
}

// SelectedTypes returns the enabled kinds, or nil when every kind is
// enabled so the query stays unfiltered.
func (f *FilterPanel) SelectedTypes() []string {
	var selected []string
	for _, t := range f.types {
		if f.enabled[t] {
			selected = append(selected, t)
		}
	}
	if len(selected) == len(f.types) {
		return nil
	}
	return selected
}

// Rerank returns whether term-frequency reranking is requested.
func (f *FilterPanel) Rerank() bool {
	return f.rerank
}

// DateRange parses the From/To fields. Empty fields yield nil bounds;
// the To bound covers its whole day.
func (f *FilterPanel) DateRange() (from, to *time.Time, err error) {
	if v := strings.TrimSpace(f.from.Value()); v != "" {
		t, parseErr := time.Parse(dateLayout, v)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("from date %q: expected %s", v, dateLayout)
		}
		from = &t
	}
	if v := strings.TrimSpace(f.to.Value()); v != "" {
		t, parseErr := time.Parse(dateLayout, v)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("to date %q: expected %s", v, dateLayout)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// View renders the panel.
func (f *FilterPanel) View() string {
	if !f.visible {
		return ""
	}

	lines := make([]string, 0, f.lastRow()+3)
	lines = append(lines, f.styles.Subtitle.Render("Filters"))

	for i, t := range f.types {
		check := "[ ]"
		if f.enabled[t] {
			check = "[x]"
		}
		lines = append(lines, f.renderRow(i, check+" "+t))
	}

	rerank := "[ ] rerank"
	if f.rerank {
		rerank = "[x] rerank"
	}
	lines = append(lines, f.renderRow(f.rerankRow(), rerank))
	lines = append(lines, f.renderRow(f.fromRow(), "from "+f.from.View()))
	lines = append(lines, f.renderRow(f.toRow(), "to   "+f.to.View()))

	content := strings.Join(lines, "\n")
	return f.styles.Border.Padding(0, 1).Render(content)
}

func (f *FilterPanel) renderRow(index int, text string) string {
	indicator := "  "
	if index == f.cursor {
		indicator = "> "
	}
	if index == f.cursor {
		return f.styles.Selected.Render(indicator + text)
	}
	return f.styles.Normal.Render(indicator + text)
}
