package extract

import (
	"fmt"
	"regexp"
	"strings"

	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/snapshot"
)

// Token fragments composed into the line patterns below. The amount token
// requires an explicit decimal part so reference numbers do not qualify.
const (
	dateToken   = `(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{1,2}-\d{1,2})`
	amountToken = `(?:[-+]?\(?(?:\d{1,3}(?:[.,']\d{3})+|\d+)[.,]\d{1,2}\)?(?:\s*(?:€|EUR))?)`
)

// The two field orderings seen across page layouts: date first
// ("27/08/2025 TRANS INM ... 27,00") and description first
// ("TRANS INM ... 27/08/2025 27,00"). A trailing second amount is the
// running balance column.
var (
	dateFirstLine = regexp.MustCompile(
		`(?i)^\s*(` + dateToken + `)\s+(.+?)\s+(` + amountToken + `)(?:\s+(` + amountToken + `))?\s*$`)
	descFirstLine = regexp.MustCompile(
		`(?i)^\s*(.+?)\s+(` + dateToken + `)\s+(` + amountToken + `)(?:\s+(` + amountToken + `))?\s*$`)
)

// TextExtractor runs composed regular expressions over the rendered text,
// line by line. It is the fallback for pages with no reliable DOM
// structure.
type TextExtractor struct{}

// Name identifies the strategy in source tags and logs.
func (e *TextExtractor) Name() string { return "text" }

// Extract matches movement-shaped lines in the rendered page text.
func (e *TextExtractor) Extract(page *snapshot.Page) []models.RawCandidate {
	var candidates []models.RawCandidate
	for li, line := range strings.Split(page.Text(), "\n") {
		guard(e.Name(), li, func() {
			if c, ok := e.extractLine(line, li); ok {
				candidates = append(candidates, c)
			}
		})
	}

	log.Debug("Text scan complete",
		logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
		logging.Field{Key: logging.FieldCandidates, Value: len(candidates)})
	return candidates
}

func (e *TextExtractor) extractLine(line string, idx int) (models.RawCandidate, bool) {
	tag := fmt.Sprintf("text.line[%d]", idx)

	if m := dateFirstLine.FindStringSubmatch(line); m != nil {
		return models.RawCandidate{
			DateText:        m[1],
			DescriptionText: m[2],
			AmountText:      m[3],
			BalanceText:     m[4],
			SourceTag:       tag,
		}, true
	}
	if m := descFirstLine.FindStringSubmatch(line); m != nil {
		return models.RawCandidate{
			DateText:        m[2],
			DescriptionText: m[1],
			AmountText:      m[3],
			BalanceText:     m[4],
			SourceTag:       tag,
		}, true
	}
	return models.RawCandidate{}, false
}
