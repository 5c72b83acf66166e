package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/models"
)

func TestFilterByRange(t *testing.T) {
	transactions := []models.Transaction{
		tx(28, "C", 3, "c"),
		tx(27, "B", 2, "b"),
		tx(26, "A", 1, "a"),
	}
	day := func(d int) *time.Time {
		v := time.Date(2025, time.August, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	t.Run("Both bounds inclusive", func(t *testing.T) {
		got := FilterByRange(transactions, day(26), day(27))
		require.Len(t, got, 2)
		assert.Equal(t, "B", got[0].Description)
		assert.Equal(t, "A", got[1].Description)
	})

	t.Run("Single-day window", func(t *testing.T) {
		got := FilterByRange(transactions, day(27), day(27))
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Description)
	})

	t.Run("Open start", func(t *testing.T) {
		got := FilterByRange(transactions, nil, day(26))
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Description)
	})

	t.Run("Open end", func(t *testing.T) {
		got := FilterByRange(transactions, day(28), nil)
		require.Len(t, got, 1)
		assert.Equal(t, "C", got[0].Description)
	})

	t.Run("Both bounds open keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByRange(transactions, nil, nil), 3)
	})

	t.Run("Window matching nothing yields empty slice", func(t *testing.T) {
		got := FilterByRange(transactions, day(1), day(5))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
