package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
	"github.com/coveline/crmdex/internal/core/ports/driving"
	"github.com/coveline/crmdex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit caps the result set when the caller gives no limit.
const defaultSearchLimit = 200

// SearchService provides full-text search over the index.
type SearchService struct {
	store        driven.ItemStore
	defaultLimit int
}

// NewSearchService creates a new search service.
// A defaultLimit of zero or less selects the built-in cap.
func NewSearchService(store driven.ItemStore, defaultLimit int) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = defaultSearchLimit
	}
	return &SearchService{store: store, defaultLimit: defaultLimit}
}

// Search performs full-text search across all indexed items.
// The query runs in websearch mode first; if the store rejects its
// syntax, the identical query is retried in plain mode before any error
// surfaces. The date filter is applied after retrieval and fails open
// for items without a parseable timestamp.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	// Request more rows internally so post-retrieval filtering and the
	// offset still leave a full page.
	internalLimit := (limit + opts.Offset) * 2

	results, err := s.store.Search(ctx, query, domain.QueryModeWebsearch, opts.Types, internalLimit)
	if errors.Is(err, domain.ErrQuerySyntax) {
		logger.Debug("Websearch syntax rejected for %q, retrying in plain mode", query)
		results, err = s.store.Search(ctx, query, domain.QueryModePlain, opts.Types, internalLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if opts.From != nil || opts.To != nil {
		results = filterByDate(results, opts.From, opts.To)
	}

	if opts.Rerank {
		Rerank(results, query)
	}

	results = applyPagination(results, opts.Offset, limit)

	for i := range results {
		results[i].Snippet = Snippet(results[i].Item.Content, query, SnippetWindow)
	}

	logger.Debug("Search %q: %d results", query, len(results))
	return results, nil
}

// filterByDate drops items whose timestamp falls outside [from, to].
// Items without a parseable timestamp are kept; the filter narrows, it
// never hides rows just because the source omitted a date.
func filterByDate(results []domain.SearchResult, from, to *time.Time) []domain.SearchResult {
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		ts, ok := r.Item.Timestamp()
		if !ok {
			filtered = append(filtered, r)
			continue
		}
		if from != nil && ts.Before(*from) {
			continue
		}
		if to != nil && ts.After(*to) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// applyPagination applies offset and limit to results.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := offset + limit
	if end > len(results) {
		end = len(results)
	}

	return results[offset:end]
}
