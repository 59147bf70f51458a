package domain

import "time"

// QueryMode selects the text-search syntax dialect sent to the store.
type QueryMode int

const (
	// QueryModeWebsearch supports quoted phrases, -exclusion and OR.
	// The store's parser may reject malformed input in this mode.
	QueryModeWebsearch QueryMode = iota

	// QueryModePlain treats every term as required (implicit AND).
	// Crash-proof fallback when websearch syntax fails to parse.
	QueryModePlain
)

// String returns the mode name.
func (m QueryMode) String() string {
	if m == QueryModePlain {
		return "plain"
	}
	return "websearch"
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Types filters to the selected entity kinds. Empty means all.
	Types []string

	// Limit is the maximum number of results. Zero means the configured
	// default.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// From and To bound the optional date filter. Items without a
	// parseable timestamp are retained (fail open).
	From *time.Time
	To   *time.Time

	// Rerank enables the client-side term-frequency scorer.
	Rerank bool
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Item is the matched index row.
	Item IndexedItem

	// Score is the relevance score. Store rank by default; the
	// term-frequency heuristic when reranking is enabled.
	Score float64

	// Snippet is the bounded, highlighted excerpt of Content.
	Snippet string
}
