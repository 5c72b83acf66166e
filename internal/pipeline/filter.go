package pipeline

import (
	"time"

	"jvillar/bankinter-csv/internal/models"
)

// FilterByRange keeps transactions with start <= date <= end. Nil bounds
// are open. A window matching nothing yields an empty slice, not an error.
func FilterByRange(transactions []models.Transaction, start, end *time.Time) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if start != nil && tx.Date.Before(*start) {
			continue
		}
		if end != nil && tx.Date.After(*end) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
