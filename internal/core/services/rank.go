package services

import (
	"sort"
	"strings"

	"github.com/coveline/crmdex/internal/core/domain"
)

// Rerank rescores results in place with a term-frequency heuristic and
// stable-sorts them by score, highest first. Title hits dominate body
// hits; a multi-word query appearing verbatim earns a flat bonus. This
// is a crude tie-breaker on top of the store's rank, not a ranking
// model.
func Rerank(results []domain.SearchResult, query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return
	}

	for i := range results {
		results[i].Score = rerankScore(results[i].Item, q)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// rerankScore computes the heuristic score for one item against an
// already lower-cased query.
func rerankScore(item domain.IndexedItem, q string) float64 {
	title := strings.ToLower(item.Title)
	content := strings.ToLower(item.Content)

	score := float64(strings.Count(title, q)*10 + strings.Count(content, q))

	// Verbatim phrase bonus only applies to multi-word queries; for a
	// single word the counts above already cover it.
	if strings.Contains(q, " ") {
		if strings.Contains(title, q) {
			score += 20
		}
		if strings.Contains(content, q) {
			score += 5
		}
	}

	return score
}
