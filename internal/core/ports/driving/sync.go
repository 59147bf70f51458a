package driving

import (
	"context"

	"github.com/coveline/crmdex/internal/core/domain"
)

// SyncOrchestrator coordinates entity synchronisation from the CRM.
type SyncOrchestrator interface {
	// Sync runs one full synchronisation and returns its journal entry.
	Sync(ctx context.Context) (*domain.SyncRun, error)

	// Status returns the sync state of the index.
	Status(ctx context.Context) (*SyncStatus, error)
}

// SyncStatus summarises the state of the index and the last run.
type SyncStatus struct {
	// Running indicates if a sync is currently in progress.
	Running bool

	// ItemsProcessed and ErrorCount track the in-flight run for
	// progress polling. Zero when idle.
	ItemsProcessed int
	ErrorCount     int

	// IndexCounts is the number of indexed items per entity type.
	IndexCounts map[string]int

	// LastRun is the most recent completed run, nil when none exists.
	LastRun *domain.SyncRun
}
