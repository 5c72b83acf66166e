package pipeline

import (
	"sort"

	"jvillar/bankinter-csv/internal/models"
)

// MergeAndDedup collapses duplicate detections of the same movement by
// different extractors. Identity is (date, description prefix, amount); the
// first transaction seen for a key wins, which is why callers must pass
// transactions in extractor order. The result is sorted by date descending,
// most recent first.
func MergeAndDedup(transactions []models.Transaction, prefixLen int) []models.Transaction {
	seen := make(map[string]bool, len(transactions))
	deduped := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		key := tx.Key(prefixLen)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, tx)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Date.After(deduped[j].Date)
	})
	return deduped
}
