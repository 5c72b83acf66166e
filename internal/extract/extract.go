// Package extract implements the four candidate-extraction strategies that
// scan a page snapshot for bank movements. The strategies are independent
// and deliberately over-inclusive; the pipeline dedups their overlap.
package extract

import (
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/snapshot"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Extractor is one strategy for scanning a page snapshot and emitting raw
// candidate transactions. Extractors never fail as a whole: a malformed
// row or block is logged and skipped, and the scan continues.
type Extractor interface {
	// Name identifies the strategy in source tags and logs.
	Name() string

	// Extract scans the snapshot and returns every candidate found.
	// An empty slice is a normal outcome, not an error.
	Extract(page *snapshot.Page) []models.RawCandidate
}

// Options carries the extractor tuning knobs.
type Options struct {
	// MaxScriptMatches bounds how many DOM-query matches the script
	// extractor may emit. It is the most failure-prone strategy, so its
	// cost is capped.
	MaxScriptMatches int
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{MaxScriptMatches: 15}
}

// All returns the four extractors in their canonical execution order.
// Dedup downstream is first-seen-wins, so this order decides which
// strategy's rendition of a movement survives.
func All(opts Options) []Extractor {
	if opts.MaxScriptMatches <= 0 {
		opts.MaxScriptMatches = DefaultOptions().MaxScriptMatches
	}
	return []Extractor{
		&TableExtractor{},
		&BlockExtractor{},
		&TextExtractor{},
		&ScriptExtractor{MaxMatches: opts.MaxScriptMatches},
	}
}

// guard runs fn and converts a panic on one item into a logged skip, so a
// single malformed row never aborts the rest of the scan.
func guard(extractor string, item int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("Skipping malformed item",
				logging.Field{Key: logging.FieldExtractor, Value: extractor},
				logging.Field{Key: logging.FieldRow, Value: item},
				logging.Field{Key: "panic", Value: r})
		}
	}()
	fn()
}
