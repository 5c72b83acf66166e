package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/models"
)

func tx(day int, desc string, amount float64, ref string) models.Transaction {
	return models.Transaction{
		Date:        time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.NewFromFloat(amount),
		Reference:   ref,
	}
}

func TestMergeAndDedup(t *testing.T) {
	t.Run("First seen wins", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "TRANS INM GARCIA BAENA", 27.00, "table[0].row[1]"),
			tx(27, "TRANS INM GARCIA BAENA", 27.00, "block[0]"),
			tx(27, "TRANS INM GARCIA BAENA", 27.00, "text.line[1]"),
		}

		deduped := MergeAndDedup(input, DefaultDedupPrefixLen)
		require.Len(t, deduped, 1)
		assert.Equal(t, "table[0].row[1]", deduped[0].Reference)
	})

	t.Run("Long descriptions collide on their prefix", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "TRANSFERENCIA INMEDIATA RECIBIDA GARCIA", 27.00, "a"),
			tx(27, "TRANSFERENCIA INMEDIATA RECIBIDA LOPEZ", 27.00, "b"),
		}

		// First 20 runes are identical, so these count as one movement.
		deduped := MergeAndDedup(input, DefaultDedupPrefixLen)
		require.Len(t, deduped, 1)
		assert.Equal(t, "a", deduped[0].Reference)
	})

	t.Run("Same movement on different days is kept", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "RECIBO LUZ", -40.00, "a"),
			tx(26, "RECIBO LUZ", -40.00, "b"),
		}
		assert.Len(t, MergeAndDedup(input, DefaultDedupPrefixLen), 2)
	})

	t.Run("Same day and description with different amounts is kept", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "BIZUM", -10.00, "a"),
			tx(27, "BIZUM", -15.00, "b"),
		}
		assert.Len(t, MergeAndDedup(input, DefaultDedupPrefixLen), 2)
	})

	t.Run("Result is sorted date descending", func(t *testing.T) {
		input := []models.Transaction{
			tx(25, "A", 1, "a"),
			tx(27, "B", 2, "b"),
			tx(26, "C", 3, "c"),
		}

		deduped := MergeAndDedup(input, DefaultDedupPrefixLen)
		require.Len(t, deduped, 3)
		assert.Equal(t, 27, deduped[0].Date.Day())
		assert.Equal(t, 26, deduped[1].Date.Day())
		assert.Equal(t, 25, deduped[2].Date.Day())
	})

	t.Run("Same-day order is stable", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "PRIMERO", 1, "a"),
			tx(27, "SEGUNDO", 2, "b"),
		}

		deduped := MergeAndDedup(input, DefaultDedupPrefixLen)
		require.Len(t, deduped, 2)
		assert.Equal(t, "PRIMERO", deduped[0].Description)
		assert.Equal(t, "SEGUNDO", deduped[1].Description)
	})

	t.Run("Empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, MergeAndDedup(nil, DefaultDedupPrefixLen))
	})

	t.Run("Applying dedup to its own output changes nothing", func(t *testing.T) {
		input := []models.Transaction{
			tx(27, "TRANS INM GARCIA BAENA", 27.00, "table[0].row[1]"),
			tx(27, "TRANS INM GARCIA BAENA", 27.00, "block[0]"),
			tx(26, "RECIB BANKINTER SEGUROS", -26.00, "table[0].row[2]"),
			tx(26, "RECIB BANKINTER SEGUROS", -26.00, "text.line[2]"),
			tx(25, "BIZUM", -10.00, "text.line[3]"),
		}

		once := MergeAndDedup(input, DefaultDedupPrefixLen)
		twice := MergeAndDedup(once, DefaultDedupPrefixLen)
		assert.Equal(t, once, twice)
	})
}
