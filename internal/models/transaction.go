// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single bank movement extracted from a session page.
// Once built by the normalizer it is never mutated; downstream stages read it
// and produce new slices.
type Transaction struct {
	Date        time.Time        // Value date of the movement, no time component
	Description string           // Cleaned free-text label
	Amount      decimal.Decimal  // Signed: positive = credit, negative = debit
	Balance     *decimal.Decimal // Running balance after the movement, when the page exposed one
	Reference   string           // Extraction provenance tag, debugging only
}

// IsDebit returns true if the movement takes money out of the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit returns true if the movement puts money into the account.
func (t Transaction) IsCredit() bool {
	return !t.Amount.IsNegative()
}

// Key builds the deduplication identity for the transaction: value date,
// a description prefix of prefixLen runes, and the amount. Two movements
// sharing this key are the same movement regardless of which extractor
// detected them. The reference tag is deliberately excluded.
func (t Transaction) Key(prefixLen int) string {
	desc := []rune(t.Description)
	if prefixLen > 0 && len(desc) > prefixLen {
		desc = desc[:prefixLen]
	}
	return fmt.Sprintf("%s|%s|%s", t.Date.Format("2006-01-02"), string(desc), t.Amount.StringFixed(2))
}

// RawCandidate is an unvalidated tuple of text fields suspected of
// representing a transaction, as emitted by an extractor before any parsing.
type RawCandidate struct {
	DateText        string
	DescriptionText string
	AmountText      string
	BalanceText     string
	SourceTag       string
}
