package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/snapshot"
)

const movementsTable = `<html><body>
<table class="movements">
  <tr><th>Fecha</th><th>Concepto</th><th>Importe</th><th>Saldo</th></tr>
  <tr><td>27/08/2025</td><td>TRANS INM GARCIA BAENA</td><td>27,00 €</td><td>1.450,25 €</td></tr>
  <tr><td>26/08/2025</td><td>RECIB BANKINTER SEGUROS</td><td>-26,00 €</td><td>1.423,25 €</td></tr>
</table>
</body></html>`

func TestTableExtractor(t *testing.T) {
	extractor := &TableExtractor{}
	assert.Equal(t, "table", extractor.Name())

	t.Run("Classifies cells of movement rows", func(t *testing.T) {
		page := snapshot.New(movementsTable, "", "test")
		candidates := extractor.Extract(page)
		require.Len(t, candidates, 2)

		assert.Equal(t, "27/08/2025", candidates[0].DateText)
		assert.Equal(t, "TRANS INM GARCIA BAENA", candidates[0].DescriptionText)
		assert.Equal(t, "27,00 €", candidates[0].AmountText)
		assert.Equal(t, "1.450,25 €", candidates[0].BalanceText)
		assert.Equal(t, "table[0].row[1]", candidates[0].SourceTag)

		assert.Equal(t, "26/08/2025", candidates[1].DateText)
		assert.Equal(t, "-26,00 €", candidates[1].AmountText)
	})

	t.Run("Header row is skipped", func(t *testing.T) {
		page := snapshot.New(movementsTable, "", "test")
		for _, c := range extractor.Extract(page) {
			assert.NotEqual(t, "Fecha", c.DateText)
			assert.NotEqual(t, "Concepto", c.DescriptionText)
		}
	})

	t.Run("Layout tables yield nothing", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<table><tr><td>Inicio</td><td>Cuentas</td><td>Salir</td></tr></table>
		</body></html>`, "", "test")
		assert.Empty(t, extractor.Extract(page))
	})

	t.Run("Row with amount but no date still qualifies", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<table><tr><td>COMISION MANTENIMIENTO</td><td>-5,00 €</td></tr></table>
		</body></html>`, "", "test")
		candidates := extractor.Extract(page)
		require.Len(t, candidates, 1)
		assert.Empty(t, candidates[0].DateText)
		assert.Equal(t, "-5,00 €", candidates[0].AmountText)
		assert.Equal(t, "COMISION MANTENIMIENTO", candidates[0].DescriptionText)
	})

	t.Run("Description with digits is not misread as an amount", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<table><tr><td>27/08/2025</td><td>RECIBO POLIZA 4412</td><td>-26,00 €</td></tr></table>
		</body></html>`, "", "test")
		candidates := extractor.Extract(page)
		require.Len(t, candidates, 1)
		assert.Equal(t, "RECIBO POLIZA 4412", candidates[0].DescriptionText)
		assert.Equal(t, "-26,00 €", candidates[0].AmountText)
	})

	t.Run("No markup yields nothing", func(t *testing.T) {
		page := snapshot.New("", "text only", "test")
		assert.Empty(t, extractor.Extract(page))
	})
}
