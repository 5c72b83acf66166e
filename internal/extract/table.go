package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"jvillar/bankinter-csv/internal/currencyutils"
	"jvillar/bankinter-csv/internal/dateutils"
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/snapshot"
)

// TableExtractor scans every <table> in the snapshot. Each data row is
// classified cell by cell: the cell that parses as a date becomes the date
// field, the first cell that parses as an amount becomes the amount, a
// second one becomes the running balance, and the longest leftover cell
// text becomes the description.
type TableExtractor struct{}

// Name identifies the strategy in source tags and logs.
func (e *TableExtractor) Name() string { return "table" }

// Extract scans the snapshot's tables for movement rows.
func (e *TableExtractor) Extract(page *snapshot.Page) []models.RawCandidate {
	doc, err := page.Document()
	if err != nil || doc == nil {
		log.Debug("No parseable markup for table scan",
			logging.Field{Key: logging.FieldExtractor, Value: e.Name()})
		return nil
	}

	var candidates []models.RawCandidate
	for ti, table := range findElements(doc, "table") {
		for ri, row := range childElements(table, "tr") {
			guard(e.Name(), ri, func() {
				if c, ok := e.extractRow(row, ti, ri); ok {
					candidates = append(candidates, c)
				}
			})
		}
	}

	log.Debug("Table scan complete",
		logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
		logging.Field{Key: logging.FieldCandidates, Value: len(candidates)})
	return candidates
}

func (e *TableExtractor) extractRow(row *html.Node, tableIdx, rowIdx int) (models.RawCandidate, bool) {
	cells := childElements(row, "td", "th")
	if len(cells) == 0 {
		return models.RawCandidate{}, false
	}

	// Header rows are all <th>.
	header := true
	for _, cell := range cells {
		if cell.Data != "th" {
			header = false
			break
		}
	}
	if header {
		return models.RawCandidate{}, false
	}

	var dateText, amountText, balanceText string
	var rest []string
	for _, cell := range cells {
		text := snapshot.NodeText(cell)
		if text == "" {
			continue
		}
		if dateText == "" {
			if _, err := dateutils.ParseDate(text); err == nil {
				dateText = text
				continue
			}
		}
		if _, err := currencyutils.ParseAmount(text); err == nil {
			switch {
			case amountText == "":
				amountText = text
			case balanceText == "":
				balanceText = text
			}
			continue
		}
		rest = append(rest, text)
	}

	// A row with neither a date nor an amount is layout, not data.
	if dateText == "" && amountText == "" {
		return models.RawCandidate{}, false
	}

	return models.RawCandidate{
		DateText:        dateText,
		DescriptionText: chooseDescription(rest),
		AmountText:      amountText,
		BalanceText:     balanceText,
		SourceTag:       fmt.Sprintf("table[%d].row[%d]", tableIdx, rowIdx),
	}, true
}

// chooseDescription picks the longest leftover cell text; when no single
// cell stands out it concatenates them all.
func chooseDescription(rest []string) string {
	longest := ""
	for _, text := range rest {
		if len(text) > len(longest) {
			longest = text
		}
	}
	if len([]rune(longest)) > 3 {
		return longest
	}
	return strings.TrimSpace(strings.Join(rest, " "))
}
