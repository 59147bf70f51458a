package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBar_StartsReady(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_SearchingState(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateSearching)

	assert.Contains(t, bar.View(), "Searching...")
}

func TestBar_ResultsState(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateResults)
	bar.SetResultCount(7)

	assert.Contains(t, bar.View(), "7 results")
}

func TestBar_ResultsStateEmpty(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateResults)

	assert.Contains(t, bar.View(), "No results")
}

func TestBar_ErrorStateShowsMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("store unavailable")

	view := bar.View()
	assert.Contains(t, view, "Error: store unavailable")
	assert.Equal(t, "store unavailable", bar.Message())
}

func TestBar_HintsFollowState(t *testing.T) {
	bar := NewBar(nil, nil)

	// Idle: the short set.
	assert.Contains(t, bar.View(), "q: quit")

	// With results on screen: the result-list set.
	bar.SetState(StateResults)
	bar.SetResultCount(3)
	view := bar.View()
	assert.Contains(t, view, "n: new search")
	assert.Contains(t, view, "f: filters")
}

func TestBar_WidthPadsView(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	assert.NotEmpty(t, bar.View())
}
