package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coveline/crmdex/internal/core/domain"
)

// dateLayout is the accepted format for the --from and --to flags.
const dateLayout = "2006-01-02"

var (
	searchLimit  int
	searchJSON   bool
	searchTypes  []string
	searchFrom   string
	searchTo     string
	searchRerank bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed CRM entities",
	Long: `Performs full-text search across all indexed CRM entities.
Queries use web search syntax: quoted phrases, OR, and -exclusions.

Results can be narrowed by entity type and creation date, and
optionally reranked by term frequency.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil, "restrict to entity types (repeatable)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "only items created on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "only items created on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchRerank, "rerank", false, "rerank results by term frequency")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:  searchLimit,
		Types:  searchTypes,
		Rerank: searchRerank,
	}

	var err error
	if opts.From, err = parseDateFlag("from", searchFrom); err != nil {
		return err
	}
	if opts.To, err = parseDateFlag("to", searchTo); err != nil {
		return err
	}
	if opts.To != nil {
		// Bound is inclusive of the whole end day.
		end := opts.To.Add(24*time.Hour - time.Nanosecond)
		opts.To = &end
	}

	ctx := context.Background()
	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// parseDateFlag parses a YYYY-MM-DD flag value. Empty means unset.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", name, value)
	}
	return &ts, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		item := results[i].Item

		title := item.Title
		if title == "" {
			title = item.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)

		meta := item.Type
		if ts, ok := item.Timestamp(); ok {
			meta += "  " + ts.Format(dateLayout)
		}
		cmd.Printf("      %s\n", meta)

		if snippet := plainSnippet(results[i].Snippet); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		if item.URL != "" {
			cmd.Printf("      %s\n", item.URL)
		}
		cmd.Println()
	}

	return nil
}

// plainSnippet strips the highlight markers for terminal output.
func plainSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, "[[", "")
	return strings.ReplaceAll(snippet, "]]", "")
}
