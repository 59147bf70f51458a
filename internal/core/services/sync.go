package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
	"github.com/coveline/crmdex/internal/core/ports/driving"
	"github.com/coveline/crmdex/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

const (
	// defaultBatchSize is the number of items written per upsert statement.
	defaultBatchSize = 50

	// maxUpsertRetries caps how often a single item is retried after a
	// store timeout before it is dropped.
	maxUpsertRetries = 2
)

// SyncOrchestrator coordinates entity synchronisation from the CRM into
// the index. It consumes the connector's item channel, batches writes,
// and bisects batches that hit the store's statement timeout.
type SyncOrchestrator struct {
	connector driven.Connector
	store     driven.ItemStore
	runStore  driven.SyncRunStore
	batchSize int

	// Status tracking
	mu      sync.RWMutex
	running bool
	status  driving.SyncStatus
}

// NewSyncOrchestrator creates a new sync orchestrator.
// A batchSize of zero or less selects the default.
func NewSyncOrchestrator(
	connector driven.Connector,
	store driven.ItemStore,
	runStore driven.SyncRunStore,
	batchSize int,
) *SyncOrchestrator {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &SyncOrchestrator{
		connector: connector,
		store:     store,
		runStore:  runStore,
		batchSize: batchSize,
	}
}

// Sync runs one full synchronisation and returns its journal entry.
//
//nolint:gocognit // Orchestration function coordinating channel consumption and batching
func (o *SyncOrchestrator) Sync(ctx context.Context) (*domain.SyncRun, error) {
	if o.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if o.connector == nil {
		return nil, fmt.Errorf("sync: connector not configured")
	}

	if err := o.connector.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate connector: %w", err)
	}

	run := domain.SyncRun{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		TypeCounts: make(map[string]int),
	}
	o.setRunning(true)
	defer o.setRunning(false)

	logger.Info("Starting sync run %s", run.ID)

	itemsCh, errsCh := o.connector.FullSync(ctx)

	batch := make([]domain.IndexedItem, 0, o.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		upserted, dropped, err := o.safeUpsert(ctx, batch)
		if err != nil {
			return err
		}
		run.ItemsUpserted += upserted
		run.ItemsDropped += dropped
		o.addProcessed(upserted)
		batch = batch[:0]
		return nil
	}

	for itemsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if ie, isItem := driven.AsItemError(err); isItem {
				run.ErrorCount++
				o.addError()
				logger.Debug("Skipping %s: %v", ie.Unit, ie.Err)
				continue
			}
			// Anything else on the error channel aborts the run.
			return nil, fmt.Errorf("connector error: %w", err)

		case item, ok := <-itemsCh:
			if !ok {
				itemsCh = nil
				continue
			}
			item.StripNullMetadata()
			batch = append(batch, item)
			run.TypeCounts[item.Type]++
			if len(batch) >= o.batchSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now().UTC()
	if o.runStore != nil {
		if err := o.runStore.Save(ctx, run); err != nil {
			// The journal is reporting only; a failed write never
			// invalidates the completed run.
			logger.Warn("Failed to journal sync run %s: %v", run.ID, err)
		}
	}

	logger.Info("Sync complete: %d items, %d dropped, %d errors",
		run.ItemsUpserted, run.ItemsDropped, run.ErrorCount)
	return &run, nil
}

// Status returns the sync state of the index.
func (o *SyncOrchestrator) Status(ctx context.Context) (*driving.SyncStatus, error) {
	o.mu.RLock()
	status := driving.SyncStatus{
		Running:        o.running,
		ItemsProcessed: o.status.ItemsProcessed,
		ErrorCount:     o.status.ErrorCount,
	}
	o.mu.RUnlock()

	if o.store != nil {
		counts, err := o.store.CountByType(ctx)
		if err != nil {
			return nil, fmt.Errorf("count index: %w", err)
		}
		status.IndexCounts = counts
	}

	if o.runStore != nil {
		last, err := o.runStore.Latest(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load last run: %w", err)
		}
		status.LastRun = last
	}

	return &status, nil
}

// upsertChunk is one unit of the bisection work stack.
type upsertChunk struct {
	items    []domain.IndexedItem
	attempts int
}

// safeUpsert writes a batch, bisecting on store timeouts. The loop is
// iterative with an explicit stack; slices bottom out at one item, and a
// single item that still times out after maxUpsertRetries is dropped.
// Non-timeout store errors drop the offending slice outright.
// Returns the upserted and dropped counts.
func (o *SyncOrchestrator) safeUpsert(ctx context.Context, items []domain.IndexedItem) (int, int, error) {
	var upserted, dropped int

	stack := []upsertChunk{{items: items}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return upserted, dropped, err
		}

		chunk := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		err := o.store.UpsertBatch(ctx, chunk.items)
		if err == nil {
			upserted += len(chunk.items)
			continue
		}

		if errors.Is(err, domain.ErrStoreTimeout) {
			if len(chunk.items) > 1 {
				mid := len(chunk.items) / 2
				logger.Debug("Store timeout on batch of %d, bisecting", len(chunk.items))
				stack = append(stack,
					upsertChunk{items: chunk.items[mid:]},
					upsertChunk{items: chunk.items[:mid]},
				)
				continue
			}
			if chunk.attempts < maxUpsertRetries {
				stack = append(stack, upsertChunk{items: chunk.items, attempts: chunk.attempts + 1})
				continue
			}
			logger.Warn("Dropping item %s/%s after %d timeouts",
				chunk.items[0].Type, chunk.items[0].ID, chunk.attempts+1)
			dropped++
			continue
		}

		logger.Warn("Dropping batch of %d: %v", len(chunk.items), err)
		dropped += len(chunk.items)
	}

	return upserted, dropped, nil
}

// setRunning flips the running flag and resets progress counters.
func (o *SyncOrchestrator) setRunning(running bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = running
	if running {
		o.status.ItemsProcessed = 0
		o.status.ErrorCount = 0
	}
}

func (o *SyncOrchestrator) addProcessed(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.ItemsProcessed += n
}

func (o *SyncOrchestrator) addError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.ErrorCount++
}
