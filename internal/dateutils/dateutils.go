// Package dateutils provides locale-aware date parsing for the movement
// texts produced by the Bankinter web session.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts observed across the session pages, in order of how often
// they appear. The two-digit-year and textual-month variants need manual
// handling and are not expressible as plain layouts.
const (
	LayoutSlash = "02/01/2006"
	LayoutDash  = "02-01-2006"
	LayoutISO   = "2006-01-02"
)

// Years outside this window are treated as non-dates. Account numbers and
// reference codes often contain digit groups that would otherwise pass as
// absurd calendar dates.
const (
	minYear = 1900
	maxYear = 2100
)

var (
	slashPattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashPattern    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	isoPattern     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	shortPattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	textualPattern = regexp.MustCompile(`(?i)^(\d{1,2})\s+(?:de\s+)?([a-zñ]{3,10})\.?\s*(?:de\s+)?(\d{4})$`)

	// Token forms of the same patterns, for locating dates inside longer text.
	anyNumericToken = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	anyISOToken     = regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`)
	anyTextualToken = regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:de\s+)?[a-zñ]{3,10}\.?\s*(?:de\s+)?\d{4}\b`)
)

// spanishMonths maps month names and the abbreviations Bankinter renders
// ("27 ago 2025") to month numbers.
var spanishMonths = map[string]time.Month{
	"ene": time.January, "enero": time.January,
	"feb": time.February, "febrero": time.February,
	"mar": time.March, "marzo": time.March,
	"abr": time.April, "abril": time.April,
	"may": time.May, "mayo": time.May,
	"jun": time.June, "junio": time.June,
	"jul": time.July, "julio": time.July,
	"ago": time.August, "agosto": time.August,
	"sep": time.September, "sept": time.September, "septiembre": time.September,
	"set": time.September, "setiembre": time.September,
	"oct": time.October, "octubre": time.October,
	"nov": time.November, "noviembre": time.November,
	"dic": time.December, "diciembre": time.December,
}

// ParseDate parses a short text fragment as a calendar date. Formats are
// attempted in order: DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD, DD/MM/YY and
// "DD <spanish month> YYYY". It returns an error when nothing matches or the
// matched numbers do not form a valid calendar date; it never substitutes a
// fallback date.
func ParseDate(text string) (time.Time, error) {
	cleaned := Clean(text)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date text")
	}

	if m := slashPattern.FindStringSubmatch(cleaned); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	if m := dashPattern.FindStringSubmatch(cleaned); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	if m := isoPattern.FindStringSubmatch(cleaned); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := shortPattern.FindStringSubmatch(cleaned); m != nil {
		return makeDate(expandYear(m[3]), m[2], m[1])
	}
	if m := textualPattern.FindStringSubmatch(cleaned); m != nil {
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month name: %s", m[2])
		}
		return makeDate(m[3], strconv.Itoa(int(month)), m[1])
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", cleaned)
}

// FindDate locates the first date token inside a longer text and parses it.
// It returns the parsed date and the matched token.
func FindDate(text string) (time.Time, string, error) {
	for _, pattern := range []*regexp.Regexp{anyNumericToken, anyISOToken, anyTextualToken} {
		for _, token := range pattern.FindAllString(text, -1) {
			if d, err := ParseDate(token); err == nil {
				return d, token, nil
			}
		}
	}
	return time.Time{}, "", fmt.Errorf("no date token found")
}

// RemoveDates strips every recognizable date token from the text. Used when
// cleaning descriptions that carry their own date column glued in.
func RemoveDates(text string) string {
	text = anyISOToken.ReplaceAllString(text, " ")
	text = anyNumericToken.ReplaceAllString(text, " ")
	text = anyTextualToken.ReplaceAllString(text, " ")
	return text
}

// Clean trims a date fragment and collapses internal runs of whitespace.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// expandYear normalizes a two-digit year: values above 50 belong to the
// 1900s, the rest to the 2000s.
func expandYear(yy string) string {
	n, _ := strconv.Atoi(yy)
	if n > 50 {
		return strconv.Itoa(1900 + n)
	}
	return strconv.Itoa(2000 + n)
}

// makeDate builds a date from string components and rejects values that
// time.Date would silently normalize, such as 31/02.
func makeDate(year, month, day string) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	if y < minYear || y > maxYear {
		return time.Time{}, fmt.Errorf("year %d out of plausible range", y)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid date components %02d/%02d/%04d", d, m, y)
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.Year() != y || date.Month() != time.Month(m) || date.Day() != d {
		return time.Time{}, fmt.Errorf("invalid calendar date %02d/%02d/%04d", d, m, y)
	}
	return date, nil
}
