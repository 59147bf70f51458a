// Package search provides the main search view for the TUI.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/components/input"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/components/list"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/components/status"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/keymap"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/messages"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/styles"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driving"
)

// focusArea identifies which part of the view receives keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusResults
	focusFilter
)

// View represents the search view with input, filters, results list,
// and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	filter    *FilterPanel
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width  int
	height int
	ready  bool
	err    error
	focus  focusArea
}

// NewView creates a new search view offering the given entity kinds as
// type filters.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	types []string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if len(types) == 0 {
		types = domain.KnownTypes
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		filter:        NewFilterPanel(s, types),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focus:         focusInput,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Filter toggle works from anywhere; plain "f" only outside the
	// query input so typing is not hijacked.
	if keymap.Matches(msg.String(), v.keymap.Filter) {
		if msg.String() == "ctrl+f" || v.focus != focusInput {
			v.toggleFilter()
			return v, nil
		}
	}

	if v.focus == focusFilter {
		return v.handleFilterKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		// Back to the query input; from there Esc is a no-op.
		v.focus = focusInput
		v.input.Focus()
		return v, nil
	}

	// Enter in input mode submits search
	if msg.Type == tea.KeyEnter && v.focus == focusInput {
		return v, v.submit()
	}

	// Input mode: all keys go to input
	if v.focus == focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Results mode: navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "n":
		// New search: clear input and focus it
		v.focus = focusInput
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	}

	return v, nil
}

// handleFilterKey processes keyboard input while the filter panel is
// focused.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.toggleFilter()
		return v, nil
	case tea.KeyEnter:
		v.toggleFilter()
		if v.input.Value() != "" {
			return v, v.submit()
		}
		return v, nil
	}

	return v, v.filter.Update(msg)
}

// toggleFilter opens or closes the filter panel and moves focus.
func (v *View) toggleFilter() {
	v.filter.Toggle()
	if v.filter.Visible() {
		v.focus = focusFilter
		v.input.Blur()
	} else {
		v.focus = focusInput
		v.input.Focus()
	}
}

// submit runs a search for the current query and filters.
func (v *View) submit() tea.Cmd {
	query := v.input.Value()
	if query == "" {
		return nil
	}
	v.statusbar.SetState(status.StateSearching)
	v.focus = focusResults
	v.input.Blur()
	return v.performSearch(query)
}

// performSearch executes a search and returns results.
func (v *View) performSearch(query string) tea.Cmd {
	from, to, err := v.filter.DateRange()
	if err != nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: err}
		}
	}

	opts := domain.SearchOptions{
		Types:  v.filter.SelectedTypes(),
		From:   from,
		To:     to,
		Rerank: v.filter.Rerank(),
	}

	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		results, err := v.searchService.Search(v.ctx, query, opts)
		if err != nil {
			return messages.SearchCompleted{Results: nil, Err: err}
		}
		return messages.SearchCompleted{Results: results, Err: nil}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))

	// Switch to results mode after successful search
	v.focus = focusResults
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("crmdex")
	sections = append(sections, header, "")

	// Search input
	sections = append(sections, v.input.View(), "")

	// Filter panel (if open)
	if v.filter.Visible() {
		sections = append(sections, v.filter.View(), "")
	}

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Results list
	sections = append(sections, v.list.View())

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Filter exposes the filter panel, mainly for tests.
func (v *View) Filter() *FilterPanel {
	return v.filter
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focus == focusInput
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focus = focusInput
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}
