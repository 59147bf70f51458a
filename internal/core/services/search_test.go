package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coveline/crmdex/internal/adapters/driven/storage/memory"
	"github.com/coveline/crmdex/internal/core/domain"
)

func seededStore(t *testing.T) *memory.ItemStore {
	t.Helper()
	store := memory.NewItemStore()
	require.NoError(t, store.UpsertBatch(context.Background(), []domain.IndexedItem{
		{
			ID: "n1", Type: "note", Title: "Ada Lovelace",
			Content:  "Discussed the analytical engine over tea",
			Metadata: map[string]any{"created_at": "2025-03-01T10:00:00Z"},
		},
		{
			ID: "n2", Type: "note", Title: "Charles Babbage",
			Content:  "Funding for the analytical engine denied",
			Metadata: map[string]any{"created_at": "2025-05-01T10:00:00Z"},
		},
		{
			ID: "t1", Type: "task", Title: "Ship prototype",
			Content: "Analytical review before the demo",
			// No timestamp at all.
		},
	}))
	return store
}

func TestSearchService_EmptyQuery(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	results, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_NilStore(t *testing.T) {
	svc := NewSearchService(nil, 0)

	_, err := svc.Search(context.Background(), "anything", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestSearchService_TypeFilter(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	results, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{
		Types: []string{"note"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "note", r.Item.Type)
	}
}

func TestSearchService_SyntaxFallback(t *testing.T) {
	// An unbalanced quote is rejected by the websearch parser; the
	// service must retry in plain mode and still return results.
	svc := NewSearchService(seededStore(t), 0)

	results, err := svc.Search(context.Background(), `"analytical`, domain.SearchOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestSearchService_DateFilterFailOpen(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	results, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{
		From: &from,
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Item.ID)
	}
	// n1 predates the bound and is dropped; t1 has no timestamp and is
	// kept rather than silently excluded.
	assert.NotContains(t, ids, "n1")
	assert.Contains(t, ids, "n2")
	assert.Contains(t, ids, "t1")
}

func TestSearchService_SnippetsAreHighlighted(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	results, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{
		Types: []string{"note"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Snippet, "[[analytical]]")
}

func TestSearchService_LimitAndOffset(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	page1, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	beyond, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestSearchService_Rerank(t *testing.T) {
	store := memory.NewItemStore()
	require.NoError(t, store.UpsertBatch(context.Background(), []domain.IndexedItem{
		{ID: "a", Type: "note", Title: "engine engine", Content: "nothing"},
		{ID: "b", Type: "note", Title: "untitled", Content: "engine engine engine"},
	}))
	svc := NewSearchService(store, 0)

	results, err := svc.Search(context.Background(), "engine", domain.SearchOptions{Rerank: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Two title hits (20) beat three content hits (3).
	assert.Equal(t, "a", results[0].Item.ID)
	assert.Equal(t, float64(20), results[0].Score)
}

func TestSearchService_EndToEndFixtureQuery(t *testing.T) {
	svc := NewSearchService(seededStore(t), 0)

	results, err := svc.Search(context.Background(), "analytical", domain.SearchOptions{
		Types: []string{"note"},
		From:  timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		To:    timePtr(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n1", results[0].Item.ID)
	assert.Equal(t, "Ada Lovelace", results[0].Item.Title)
	assert.Contains(t, results[0].Snippet, "[[analytical]]")
}

func timePtr(t time.Time) *time.Time {
	return &t
}
