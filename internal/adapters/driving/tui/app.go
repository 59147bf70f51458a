package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/keymap"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/messages"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/styles"
	"github.com/coveline/crmdex/internal/adapters/driving/tui/views/search"
	"github.com/coveline/crmdex/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// searchView is the search view component.
	searchView *search.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Search, domain.KnownTypes),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("crmdex - CRM Search"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	if a.currentView == messages.ViewHelp {
		return a, nil
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// handleGlobalKey handles keys that apply regardless of the active
// view. Quit is only global while the query input is not capturing
// characters.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	if a.currentView == messages.ViewHelp {
		// Any key leaves help.
		a.currentView = messages.ViewSearch
		return nil, true
	}

	if a.searchView.InputFocused() {
		return nil, false
	}

	switch {
	case keymap.Matches(msg.String(), a.keymap.Quit):
		return tea.Quit, true
	case keymap.Matches(msg.String(), a.keymap.Help):
		a.currentView = messages.ViewHelp
		return nil, true
	}
	return nil, false
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.currentView == messages.ViewHelp {
		return a.renderHelp()
	}

	return a.searchView.View()
}

// renderHelp renders the full keybinding reference.
func (a *App) renderHelp() string {
	lines := []string{
		a.styles.Title.Render("crmdex - Help"),
		"",
	}

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}

	lines = append(lines, a.styles.Muted.Render("Press any key to return"))
	return strings.Join(lines, "\n")
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView exposes the search view, mainly for tests.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Err returns the last error seen by the app.
func (a *App) Err() error {
	return a.err
}
