package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/snapshot"
)

func TestScriptExtractor(t *testing.T) {
	extractor := &ScriptExtractor{MaxMatches: 15}
	assert.Equal(t, "script", extractor.Name())

	t.Run("Emits innermost elements holding date and amount", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<section>
				<span>27/08/2025 TRANS INM GARCIA BAENA 27,00 €</span>
				<span>26/08/2025 RECIB BANKINTER SEGUROS -26,00 €</span>
			</section>
		</body></html>`, "", "test")

		candidates := extractor.Extract(page)
		require.Len(t, candidates, 2)

		assert.Equal(t, "27/08/2025", candidates[0].DateText)
		assert.Equal(t, "27,00 €", candidates[0].AmountText)
		assert.Contains(t, candidates[0].DescriptionText, "TRANS INM GARCIA BAENA")
		assert.Equal(t, "script.match[0]", candidates[0].SourceTag)

		assert.Equal(t, "26/08/2025", candidates[1].DateText)
		assert.Equal(t, "-26,00 €", candidates[1].AmountText)
	})

	t.Run("Second amount in an element becomes the balance", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<span>27/08/2025 TRANS INM 27,00 € 1.450,25 €</span>
		</body></html>`, "", "test")

		candidates := extractor.Extract(page)
		require.Len(t, candidates, 1)
		assert.Equal(t, "27,00 €", candidates[0].AmountText)
		assert.Equal(t, "1.450,25 €", candidates[0].BalanceText)
	})

	t.Run("Match cap bounds the scan", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 30; i++ {
			fmt.Fprintf(&b, "<span>%02d/08/2025 MOVIMIENTO %d 10,00 €</span>", i%27+1, i)
		}
		b.WriteString("</body></html>")

		capped := &ScriptExtractor{MaxMatches: 5}
		assert.Len(t, capped.Extract(snapshot.New(b.String(), "", "test")), 5)
	})

	t.Run("Date without amount does not qualify", func(t *testing.T) {
		page := snapshot.New(`<html><body>
			<span>Ultimo acceso: 27/08/2025</span>
		</body></html>`, "", "test")
		assert.Empty(t, extractor.Extract(page))
	})

	t.Run("No markup yields nothing", func(t *testing.T) {
		page := snapshot.New("", "27/08/2025 TRANS 27,00 €", "test")
		assert.Empty(t, extractor.Extract(page))
	})
}
