// Package normalizer converts raw extractor candidates into canonical
// Transaction records, discarding anything whose date or amount cannot be
// parsed with confidence.
package normalizer

import (
	"regexp"
	"strings"

	"jvillar/bankinter-csv/internal/currencyutils"
	"jvillar/bankinter-csv/internal/dateutils"
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// FallbackDescription is substituted when cleaning leaves nothing behind.
// A visible placeholder beats an empty label in every report downstream.
const FallbackDescription = "Uncategorized movement"

// DefaultMaxDescriptionLen caps stored descriptions.
const DefaultMaxDescriptionLen = 100

// Normalizer turns RawCandidates into Transactions.
type Normalizer struct {
	maxLen  int
	phrases []*regexp.Regexp
}

// Options configures a Normalizer.
type Options struct {
	// DescriptionMaxLen caps the cleaned description, in runes.
	// Zero means DefaultMaxDescriptionLen.
	DescriptionMaxLen int

	// PhrasesFile optionally points at a YAML file overriding the
	// built-in boilerplate phrase list.
	PhrasesFile string
}

// New builds a Normalizer. The boilerplate phrase list comes from the
// override file when one is found, otherwise from the built-in defaults.
func New(opts Options) *Normalizer {
	maxLen := opts.DescriptionMaxLen
	if maxLen <= 0 {
		maxLen = DefaultMaxDescriptionLen
	}
	return &Normalizer{
		maxLen:  maxLen,
		phrases: compilePhrases(LoadPhrases(opts.PhrasesFile)),
	}
}

// compilePhrases turns the literal phrase list into case-insensitive
// matchers. Blank entries are dropped.
func compilePhrases(phrases []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			continue
		}
		compiled = append(compiled, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(phrase)))
	}
	return compiled
}

// Normalize parses the candidate's date and amount and cleans its
// description. It returns a ParseError naming the failing field when the
// candidate must be discarded; the caller decides how to count those.
func (n *Normalizer) Normalize(c models.RawCandidate) (models.Transaction, error) {
	date, err := dateutils.ParseDate(c.DateText)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "normalizer", Field: "date", Value: c.DateText, Err: err,
		}
	}

	amount, err := currencyutils.ParseAmount(c.AmountText)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "normalizer", Field: "amount", Value: c.AmountText, Err: err,
		}
	}

	tx := models.Transaction{
		Date:        date,
		Description: n.CleanDescription(c.DescriptionText),
		Amount:      amount,
		Reference:   c.SourceTag,
	}

	if c.BalanceText != "" {
		if balance, err := currencyutils.ParseAmount(c.BalanceText); err == nil {
			tx.Balance = &balance
		} else {
			log.Debug("Dropping unparsable balance",
				logging.Field{Key: logging.FieldAmount, Value: c.BalanceText})
		}
	}

	return tx, nil
}

// CleanDescription removes extraction artifacts from a description: glued-in
// date and amount columns, banking-UI boilerplate, embedded newlines. The
// result is capped and never empty.
func (n *Normalizer) CleanDescription(text string) string {
	text = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(text)
	text = dateutils.RemoveDates(text)
	text = currencyutils.RemoveAmounts(text)

	for _, phrase := range n.phrases {
		text = phrase.ReplaceAllString(text, " ")
	}

	text = strings.Join(strings.Fields(text), " ")
	text = strings.Trim(text, " -·|,;:")

	if runes := []rune(text); len(runes) > n.maxLen {
		text = strings.TrimSpace(string(runes[:n.maxLen]))
	}

	if text == "" {
		return FallbackDescription
	}
	return text
}
