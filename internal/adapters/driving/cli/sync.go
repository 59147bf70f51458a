package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise entities from the CRM",
	Long: `Pulls all entities from the CRM into the local search index.
Lists, notes, tasks, records, comments and call transcripts are walked
in full; unchanged items are upserted in place, so repeated runs are
safe.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()
	cmd.Println("Synchronising from CRM...")

	run, err := syncWithProgress(ctx, cmd, syncOrchestrator)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printRunSummary(cmd, run)
	return nil
}

// syncWithProgress runs the sync while displaying progress updates.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	syncOrch driving.SyncOrchestrator,
) (*domain.SyncRun, error) {
	type syncResult struct {
		run *domain.SyncRun
		err error
	}

	resultCh := make(chan syncResult, 1)
	go func() {
		run, err := syncOrch.Sync(ctx)
		resultCh <- syncResult{run: run, err: err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resultCh:
			if lastCount > 0 {
				cmd.Println()
			}
			return res.run, res.err
		case <-ticker.C:
			// Best effort; a status error never aborts the sync.
			status, err := syncOrch.Status(ctx)
			if err == nil && status != nil && status.ItemsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d items", status.ItemsProcessed)
				lastCount = status.ItemsProcessed
			}
		}
	}
}

// printRunSummary writes the per-type breakdown of a finished run.
func printRunSummary(cmd *cobra.Command, run *domain.SyncRun) {
	if run == nil {
		cmd.Println("Sync complete.")
		return
	}

	cmd.Printf("Sync complete in %s: %d items indexed",
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond), run.ItemsUpserted)
	if run.ItemsDropped > 0 {
		cmd.Printf(", %d dropped", run.ItemsDropped)
	}
	if run.ErrorCount > 0 {
		cmd.Printf(", %d errors", run.ErrorCount)
	}
	cmd.Println()

	types := make([]string, 0, len(run.TypeCounts))
	for t := range run.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		cmd.Printf("  %-16s %d\n", t, run.TypeCounts[t])
	}
}
