package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewSearchInput_StartsFocused(t *testing.T) {
	in := NewSearchInput(nil)

	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
}

func TestSearchInput_TypingUpdatesValue(t *testing.T) {
	in := NewSearchInput(nil)

	for _, r := range "engine" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "engine", in.Value())
}

func TestSearchInput_BlurStopsTyping(t *testing.T) {
	in := NewSearchInput(nil)
	in.Blur()

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.False(t, in.Focused())
	assert.Empty(t, in.Value())
}

func TestSearchInput_SetValue(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetValue("ada lovelace")

	assert.Equal(t, "ada lovelace", in.Value())
}

func TestSearchInput_SetWidthClampsToMinimum(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetWidth(10)

	assert.NotEmpty(t, in.View())
}

func TestSearchInput_ViewShowsPlaceholder(t *testing.T) {
	in := NewSearchInput(nil)

	assert.Contains(t, in.View(), "Search your CRM...")
}
