// Package currencyutils provides parsing of locale-formatted amount strings
// into decimal values.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// currencyNoise matches everything ParseAmount strips before looking at
	// the digits: euro signs, the EUR code, plus signs and whitespace
	// (including the non-breaking spaces Bankinter pads cells with).
	currencyNoise = regexp.MustCompile(`(?i)[€+\s\x{00A0}]|EUR`)

	// numericBody is what must remain after stripping noise and sign
	// markers for the text to qualify as an amount at all.
	numericBody = regexp.MustCompile(`^\d[\d.,']*$`)

	// decimalToken locates amount-looking substrings inside longer text:
	// grouped ("1.234,56", "1,234.56") or plain ("1234,56") digits with an
	// explicit decimal part, optional sign, accounting parentheses and a
	// trailing currency marker. Bare integers are deliberately excluded so
	// reference numbers in descriptions ("REFERENCIA 4412") do not qualify.
	decimalToken = regexp.MustCompile(`(?i)[-+]?\(?(?:\d{1,3}(?:[.,']\d{3})+|\d+)[.,]\d{1,2}\)?\s*(?:€|EUR)?`)
)

// ParseAmount parses a locale-formatted amount string into a decimal value.
// It accepts comma or dot decimal separators, optional thousands separators,
// an optional sign, accounting parentheses for negatives and an optional
// trailing currency marker. It returns an error when the text does not hold
// a numeric pattern.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount text")
	}

	negative := false

	// Accounting format: (120,50) means -120.50.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	s = currencyNoise.ReplaceAllString(s, "")

	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}

	if !numericBody.MatchString(s) {
		return decimal.Zero, fmt.Errorf("no numeric pattern in %q", text)
	}

	s = normalizeSeparators(s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", text, err)
	}

	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// AmountMatch is one amount token located inside a longer text.
type AmountMatch struct {
	Value decimal.Decimal
	Token string
}

// Amounts returns every parsable amount token with an explicit decimal part
// found in the text, in order of appearance. Bare integers are ignored so
// reference numbers in descriptions do not qualify.
func Amounts(text string) []AmountMatch {
	var matches []AmountMatch
	for _, token := range decimalToken.FindAllString(text, -1) {
		if amount, err := ParseAmount(token); err == nil {
			matches = append(matches, AmountMatch{Value: amount, Token: token})
		}
	}
	return matches
}

// FindAmount locates the first amount token inside a longer text and parses
// it. Returns the amount and the matched token.
func FindAmount(text string) (decimal.Decimal, string, error) {
	matches := Amounts(text)
	if len(matches) == 0 {
		return decimal.Zero, "", fmt.Errorf("no amount token found")
	}
	return matches[0].Value, matches[0].Token, nil
}

// RemoveAmounts strips amount-looking tokens from the text. Used when
// cleaning descriptions that have the amount column glued in.
func RemoveAmounts(text string) string {
	return decimalToken.ReplaceAllString(text, " ")
}

// normalizeSeparators rewrites the separators of a bare digit string into
// the dot-decimal form decimal.NewFromString understands.
//
// When both comma and dot are present the rightmost one is the decimal
// separator and the other marks thousands. A lone comma is always treated
// as the decimal separator; when several appear, only the last one is.
func normalizeSeparators(s string) string {
	// Apostrophes only ever group thousands (Swiss-style exports).
	s = strings.ReplaceAll(s, "'", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if strings.Count(s, ",") > 1 {
			last := strings.LastIndex(s, ",")
			s = strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + "." + s[last+1:]
	}

	return s
}

// FormatAmount renders a decimal with two decimal places and a euro suffix,
// for logs and reports.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " €"
}
