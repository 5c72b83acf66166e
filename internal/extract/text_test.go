package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/snapshot"
)

func TestTextExtractor(t *testing.T) {
	extractor := &TextExtractor{}
	assert.Equal(t, "text", extractor.Name())

	t.Run("Date-first lines", func(t *testing.T) {
		text := strings.Join([]string{
			"Movimientos de la cuenta",
			"27/08/2025 TRANS INM GARCIA BAENA 27,00 € 1.450,25 €",
			"26/08/2025 RECIB BANKINTER SEGUROS -26,00 €",
			"Saldo disponible",
		}, "\n")
		page := snapshot.New("", text, "test")

		candidates := extractor.Extract(page)
		require.Len(t, candidates, 2)

		assert.Equal(t, "27/08/2025", candidates[0].DateText)
		assert.Equal(t, "TRANS INM GARCIA BAENA", candidates[0].DescriptionText)
		assert.Equal(t, "27,00 €", candidates[0].AmountText)
		assert.Equal(t, "1.450,25 €", candidates[0].BalanceText)
		assert.Equal(t, "text.line[1]", candidates[0].SourceTag)

		assert.Equal(t, "26/08/2025", candidates[1].DateText)
		assert.Equal(t, "-26,00 €", candidates[1].AmountText)
		assert.Empty(t, candidates[1].BalanceText)
	})

	t.Run("Description-first lines", func(t *testing.T) {
		page := snapshot.New("", "TRANS INM GARCIA BAENA 27/08/2025 27,00 €", "test")

		candidates := extractor.Extract(page)
		require.Len(t, candidates, 1)
		assert.Equal(t, "27/08/2025", candidates[0].DateText)
		assert.Equal(t, "TRANS INM GARCIA BAENA", candidates[0].DescriptionText)
		assert.Equal(t, "27,00 €", candidates[0].AmountText)
	})

	t.Run("Lines without both fields are ignored", func(t *testing.T) {
		text := strings.Join([]string{
			"27/08/2025",
			"27,00 €",
			"TRANS INM GARCIA BAENA",
			"",
		}, "\n")
		page := snapshot.New("", text, "test")
		assert.Empty(t, extractor.Extract(page))
	})

	t.Run("Falls back to text derived from markup", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<div>27/08/2025 TRANS INM GARCIA BAENA 27,00 €</div>
		</body></html>`, "", "test")

		candidates := extractor.Extract(page)
		require.Len(t, candidates, 1)
		assert.Equal(t, "TRANS INM GARCIA BAENA", candidates[0].DescriptionText)
	})
}
