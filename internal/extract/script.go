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

var (
	scriptDateToken   = regexp.MustCompile(`(?i)` + dateToken)
	scriptAmountToken = regexp.MustCompile(`(?i)` + amountToken)
)

// ScriptExtractor mimics the injected DOM query used against dynamically
// rendered pages: find any element whose text holds both a recognizable
// date token and a recognizable amount token, and emit the element's whole
// text as one candidate. It is the most failure-prone strategy, so matches
// are capped.
type ScriptExtractor struct {
	MaxMatches int
}

// Name identifies the strategy in source tags and logs.
func (e *ScriptExtractor) Name() string { return "script" }

// Extract queries the DOM for innermost elements combining date and amount
// tokens, up to MaxMatches.
func (e *ScriptExtractor) Extract(page *snapshot.Page) []models.RawCandidate {
	doc, err := page.Document()
	if err != nil || doc == nil {
		log.Debug("No parseable markup for script query",
			logging.Field{Key: logging.FieldExtractor, Value: e.Name()})
		return nil
	}

	limit := e.MaxMatches
	if limit <= 0 {
		limit = DefaultOptions().MaxScriptMatches
	}

	var candidates []models.RawCandidate

	// Post-order walk keeping only innermost qualifying elements, so the
	// page body (whose text trivially holds both tokens) is not emitted
	// as one giant candidate.
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
		if n.Type != html.ElementNode || len(candidates) >= limit {
			return false
		}
		text := snapshot.NodeText(n)
		if !scriptDateToken.MatchString(text) || !scriptAmountToken.MatchString(text) {
			return false
		}
		guard(e.Name(), len(candidates), func() {
			if c, ok := e.candidateFromText(text, len(candidates)); ok {
				candidates = append(candidates, c)
			}
		})
		return true
	}
	walk(doc)

	log.Debug("Script query complete",
		logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
		logging.Field{Key: logging.FieldCandidates, Value: len(candidates)})
	return candidates
}

func (e *ScriptExtractor) candidateFromText(text string, idx int) (models.RawCandidate, bool) {
	_, dateTok, err := dateutils.FindDate(text)
	if err != nil {
		return models.RawCandidate{}, false
	}
	amounts := currencyutils.Amounts(text)
	if len(amounts) == 0 {
		return models.RawCandidate{}, false
	}

	c := models.RawCandidate{
		DateText:        dateTok,
		DescriptionText: text,
		AmountText:      amounts[0].Token,
		SourceTag:       fmt.Sprintf("script.match[%d]", idx),
	}
	if len(amounts) > 1 {
		c.BalanceText = amounts[1].Token
	}
	return c, true
}
