package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coveline/crmdex/internal/adapters/driving/tui/messages"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driving"
)

type stubSearchService struct {
	results []domain.SearchResult
}

func (s *stubSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return s.results, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	app, err := NewApp(NewPorts(&stubSearchService{}, nil))
	require.NoError(t, err)
	return app
}

func sized(app *App) *App {
	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*App)
}

func TestNewApp_RequiresSearchService(t *testing.T) {
	_, err := NewApp(NewPorts(nil, nil))
	assert.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewApp(nil)
	assert.Error(t, err)
}

func TestApp_StartsInSearchView(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.NotNil(t, app.Init())
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app := newTestApp(t)
	assert.Contains(t, app.View(), "Loading")

	app = sized(app)
	assert.Contains(t, app.View(), "crmdex")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := sized(newTestApp(t))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QTypesIntoFocusedInput(t *testing.T) {
	app := sized(newTestApp(t))
	require.True(t, app.SearchView().InputFocused())

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	app = model.(*App)

	assert.Nil(t, cmd)
	assert.Equal(t, "q", app.SearchView().Query())
}

func TestApp_HelpToggle(t *testing.T) {
	app := sized(newTestApp(t))
	app.SearchView().SetQuery("engine")

	// Leave the input so global keys apply.
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_ErrorMessageRecorded(t *testing.T) {
	app := sized(newTestApp(t))

	model, _ := app.Update(messages.ErrorOccurred{Err: assert.AnError})
	app = model.(*App)

	assert.ErrorIs(t, app.Err(), assert.AnError)
}

func TestPorts_Validate(t *testing.T) {
	var search driving.SearchService = &stubSearchService{}

	assert.NoError(t, NewPorts(search, nil).Validate())
	assert.ErrorIs(t, NewPorts(nil, nil).Validate(), ErrMissingSearchService)
}
