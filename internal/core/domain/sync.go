package domain

import "time"

// SyncRun is the journal row recorded after each ingestion run.
// Reporting only; a crashed run simply leaves no row and the next run
// re-converges through upsert idempotence.
type SyncRun struct {
	// ID is the run identifier.
	ID string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// ItemsUpserted is the count of rows written to the index.
	ItemsUpserted int

	// ItemsDropped is the count of rows abandoned after retries.
	ItemsDropped int

	// ErrorCount is the number of skipped units of work.
	ErrorCount int

	// TypeCounts breaks the processed items down per entity kind.
	TypeCounts map[string]int
}
