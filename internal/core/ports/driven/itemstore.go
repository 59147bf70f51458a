package driven

import (
	"context"

	"github.com/coveline/crmdex/internal/core/domain"
)

// ItemStore persists indexed items and serves full-text queries over them.
// Backed by Postgres with a generated tsvector column.
type ItemStore interface {
	// UpsertBatch inserts or updates a batch of items keyed by (type, id).
	// The whole batch succeeds or fails as one statement. A timeout is
	// reported as domain.ErrStoreTimeout so callers can bisect the batch.
	UpsertBatch(ctx context.Context, items []domain.IndexedItem) error

	// Search runs a full-text query and returns ranked matches.
	// An unparsable query in websearch mode is reported as
	// domain.ErrQuerySyntax so callers can retry in plain mode.
	Search(ctx context.Context, query string, mode domain.QueryMode, types []string, limit int) ([]domain.SearchResult, error)

	// Get retrieves one item by its composite key.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, key domain.Key) (*domain.IndexedItem, error)

	// CountByType returns the number of indexed items per entity type.
	CountByType(ctx context.Context) (map[string]int, error)

	// Close releases the underlying connection pool.
	Close() error
}
