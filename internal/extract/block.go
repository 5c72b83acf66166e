package extract

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"jvillar/bankinter-csv/internal/currencyutils"
	"jvillar/bankinter-csv/internal/dateutils"
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/snapshot"
)

// blockHint matches the class/id vocabulary the bank uses for div-rendered
// movement lists. Spanish terms included because the session UI mixes both.
var blockHint = regexp.MustCompile(`(?i)\b[\w-]*(mov|row|item|entry|line|transac|operacion|apunte)[\w-]*\b`)

// BlockExtractor handles pages that render movements as div-based lists
// instead of tables. It locates row/item/entry-like groupings by class or
// id and applies the date/amount/description disambiguation to each
// grouping's full text.
type BlockExtractor struct{}

// Name identifies the strategy in source tags and logs.
func (e *BlockExtractor) Name() string { return "block" }

// Extract scans block-level content regions for movement rows.
func (e *BlockExtractor) Extract(page *snapshot.Page) []models.RawCandidate {
	doc, err := page.Document()
	if err != nil || doc == nil {
		log.Debug("No parseable markup for block scan",
			logging.Field{Key: logging.FieldExtractor, Value: e.Name()})
		return nil
	}

	var candidates []models.RawCandidate
	for bi, block := range e.innermostBlocks(doc) {
		guard(e.Name(), bi, func() {
			if c, ok := e.extractBlock(block, bi); ok {
				candidates = append(candidates, c)
			}
		})
	}

	log.Debug("Block scan complete",
		logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
		logging.Field{Key: logging.FieldCandidates, Value: len(candidates)})
	return candidates
}

// innermostBlocks returns matching elements that contain no matching
// descendant. Outer containers (the whole movements list) match the same
// hints as their rows; only the rows carry a single movement each.
func (e *BlockExtractor) innermostBlocks(doc *html.Node) []*html.Node {
	var blocks []*html.Node
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		matchedBelow := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				matchedBelow = true
			}
		}
		if matchedBelow {
			return true
		}
		if n.Type == html.ElementNode && isBlockTag(n.Data) && blockHint.MatchString(classAndID(n)) {
			blocks = append(blocks, n)
			return true
		}
		return false
	}
	walk(doc)
	return blocks
}

func (e *BlockExtractor) extractBlock(block *html.Node, idx int) (models.RawCandidate, bool) {
	text := snapshot.NodeText(block)
	if text == "" {
		return models.RawCandidate{}, false
	}

	_, dateToken, dateErr := dateutils.FindDate(text)
	amounts := currencyutils.Amounts(text)
	if dateErr != nil && len(amounts) == 0 {
		return models.RawCandidate{}, false
	}

	var amountText, balanceText string
	if len(amounts) > 0 {
		amountText = amounts[0].Token
	}
	if len(amounts) > 1 {
		balanceText = amounts[1].Token
	}

	return models.RawCandidate{
		DateText:        dateToken,
		DescriptionText: text,
		AmountText:      amountText,
		BalanceText:     balanceText,
		SourceTag:       fmt.Sprintf("block[%d]", idx),
	}, true
}

func isBlockTag(tag string) bool {
	switch tag {
	case "div", "li", "article", "section", "tr":
		return true
	}
	return false
}
