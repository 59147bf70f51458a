package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore for
// testing. Matching is a naive AND over terms against title+content;
// websearch mode additionally rejects unbalanced quotes the way the real
// store's parser does, so fallback paths are exercisable.
type ItemStore struct {
	mu    sync.RWMutex
	items map[domain.Key]domain.IndexedItem

	// UpsertHook, when set, runs before each UpsertBatch write and can
	// veto it. Tests use it to simulate store timeouts.
	UpsertHook func(items []domain.IndexedItem) error

	// UpsertCalls records the size of each attempted batch.
	UpsertCalls []int
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[domain.Key]domain.IndexedItem)}
}

// UpsertBatch inserts or updates a batch of items keyed by (type, id).
func (s *ItemStore) UpsertBatch(_ context.Context, items []domain.IndexedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UpsertCalls = append(s.UpsertCalls, len(items))
	if s.UpsertHook != nil {
		if err := s.UpsertHook(items); err != nil {
			return err
		}
	}
	for _, it := range items {
		s.items[it.Key()] = it
	}
	return nil
}

// Search runs a naive full-text query and returns matches ranked by
// term hit count.
func (s *ItemStore) Search(
	_ context.Context, query string, mode domain.QueryMode, types []string, limit int,
) ([]domain.SearchResult, error) {
	if mode == domain.QueryModeWebsearch && strings.Count(query, `"`)%2 != 0 {
		return nil, domain.ErrQuerySyntax
	}

	terms := strings.Fields(strings.ToLower(strings.ReplaceAll(query, `"`, " ")))
	if len(terms) == 0 {
		return []domain.SearchResult{}, nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.SearchResult
	for _, it := range s.items {
		if len(typeSet) > 0 && !typeSet[it.Type] {
			continue
		}
		haystack := strings.ToLower(it.Title + " " + it.Content)
		hits := 0
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				hits = 0
				break
			}
			hits += strings.Count(haystack, term)
		}
		if hits == 0 {
			continue
		}
		results = append(results, domain.SearchResult{Item: it, Score: float64(hits)})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.ID < results[j].Item.ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Get retrieves one item by its composite key.
func (s *ItemStore) Get(_ context.Context, key domain.Key) (*domain.IndexedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

// CountByType returns the number of indexed items per entity type.
func (s *ItemStore) CountByType(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for key := range s.items {
		counts[key.Type]++
	}
	return counts, nil
}

// Len returns the number of stored items.
func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close is a no-op for the memory store.
func (s *ItemStore) Close() error {
	return nil
}
