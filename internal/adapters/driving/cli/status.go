package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/coveline/crmdex/internal/core/domain"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and sync status",
	Long: `Shows the number of indexed items per entity type and the most
recent sync runs from the local journal.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusRuns, "runs", "n", 5, "number of past runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()
	status, err := syncOrchestrator.Status(ctx)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if status.Running {
		cmd.Printf("Sync in progress: %d items processed (%d errors)\n\n",
			status.ItemsProcessed, status.ErrorCount)
	}

	printIndexCounts(cmd, status.IndexCounts)
	return printRecentRuns(cmd, ctx)
}

func printIndexCounts(cmd *cobra.Command, counts map[string]int) {
	if len(counts) == 0 {
		cmd.Println("Index is empty. Run \"crmdex sync\" to build it.")
		return
	}

	total := 0
	types := make([]string, 0, len(counts))
	for t, n := range counts {
		types = append(types, t)
		total += n
	}
	sort.Strings(types)

	cmd.Printf("Indexed items: %d\n", total)
	for _, t := range types {
		cmd.Printf("  %-16s %d\n", t, counts[t])
	}
}

func printRecentRuns(cmd *cobra.Command, ctx context.Context) error {
	if runStore == nil {
		return nil
	}

	runs, err := runStore.List(ctx, statusRuns)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("listing sync runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Recent syncs:")
	for _, run := range runs {
		duration := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
		cmd.Printf("  %s  %d items, %d errors (%s)\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.ItemsUpserted, run.ErrorCount, duration)
	}
	return nil
}
