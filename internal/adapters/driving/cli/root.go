// Package cli implements the crmdex command-line interface.
// It is a driving adapter: commands call core services through the
// driving ports and never touch infrastructure directly.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/coveline/crmdex/internal/core/ports/driven"
	"github.com/coveline/crmdex/internal/core/ports/driving"
	"github.com/coveline/crmdex/internal/logger"
)

// version is set via SetVersion at startup, from build metadata.
var version = "dev"

// Services injected from main before Execute.
var (
	searchService    driving.SearchService
	syncOrchestrator driving.SyncOrchestrator
	runStore         driven.SyncRunStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "crmdex",
	Short: "Search your CRM from the terminal",
	Long: `crmdex pulls people, companies, notes, tasks and calls out of your
CRM into a local full-text index and lets you search them from the
terminal or an interactive TUI.

Run "crmdex sync" first to build the index, then "crmdex search" or
"crmdex tui".`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the core services the commands depend on.
// Call before Execute.
func SetServices(
	search driving.SearchService,
	sync driving.SyncOrchestrator,
	runs driven.SyncRunStore,
) {
	searchService = search
	syncOrchestrator = sync
	runStore = runs
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
