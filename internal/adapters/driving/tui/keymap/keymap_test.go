package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"Quit", km.Quit.Keys(), []string{"q", "ctrl+c"}},
		{"Help", km.Help.Keys(), []string{"?"}},
		{"Filter", km.Filter.Keys(), []string{"f", "ctrl+f"}},
		{"NewSearch", km.NewSearch.Keys(), []string{"n"}},
		{"Up", km.Up.Keys(), []string{"up", "k"}},
		{"Down", km.Down.Keys(), []string{"down", "j"}},
		{"Back", km.Back.Keys(), []string{"esc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.keys)
		})
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("ctrl+f", km.Filter))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("g", km.Filter))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()
	require.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestResultsHelp_IncludesFilter(t *testing.T) {
	km := DefaultKeyMap()

	found := false
	for _, b := range km.ResultsHelp() {
		if b.Help().Desc == "filters" {
			found = true
		}
	}
	assert.True(t, found, "results hints should mention the filter panel")
}

func TestFullHelp_CoversQuitAndHelp(t *testing.T) {
	km := DefaultKeyMap()

	var all []string
	for _, group := range km.FullHelp() {
		for _, b := range group {
			all = append(all, b.Keys()...)
		}
	}
	assert.Contains(t, all, "q")
	assert.Contains(t, all, "?")
}
