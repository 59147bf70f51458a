package driven

import (
	"context"

	"github.com/coveline/crmdex/internal/core/domain"
)

// SyncRunStore journals completed sync runs.
// Backed by SQLite in the state directory.
type SyncRunStore interface {
	// Save stores a finished sync run.
	Save(ctx context.Context, run domain.SyncRun) error

	// Latest retrieves the most recent run.
	// Returns domain.ErrNotFound when no run has completed yet.
	Latest(ctx context.Context) (*domain.SyncRun, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Close releases resources.
	Close() error
}
