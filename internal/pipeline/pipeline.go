// Package pipeline composes the four extractors, the normalizer, the
// deduplicator and the date-range filter into the single entry point the
// CLI and the export collaborators call.
package pipeline

import (
	"errors"
	"sync"
	"time"

	"jvillar/bankinter-csv/internal/extract"
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/normalizer"
	"jvillar/bankinter-csv/internal/parsererror"
	"jvillar/bankinter-csv/internal/snapshot"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package and its stages.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
		extract.SetLogger(logger)
		normalizer.SetLogger(logger)
	}
}

// DefaultDedupPrefixLen is how many description runes take part in the
// dedup identity.
const DefaultDedupPrefixLen = 20

// Options configures one pipeline invocation.
type Options struct {
	Extract    extract.Options
	Normalizer normalizer.Options

	// DedupPrefixLen overrides DefaultDedupPrefixLen when positive.
	DedupPrefixLen int

	// Start and End bound the result window, inclusive on both ends.
	// Nil bounds are open; default-window selection is the caller's job.
	Start *time.Time
	End   *time.Time
}

// Stats counts what each stage kept and dropped. Partial-data problems are
// never raised as errors, so these counters are the only trace of them.
type Stats struct {
	CandidatesByExtractor map[string]int
	DiscardedDate         int
	DiscardedAmount       int
	DuplicatesRemoved     int
	FilteredOut           int
}

// Run executes the full pipeline over one page snapshot. The only error it
// returns is the systemic empty-snapshot condition; everything else is
// recovered per candidate and reported through Stats. An empty transaction
// list is a valid outcome.
func Run(page *snapshot.Page, opts Options) ([]models.Transaction, *Stats, error) {
	if err := page.Validate(); err != nil {
		return nil, nil, err
	}

	stats := &Stats{CandidatesByExtractor: make(map[string]int)}
	extractors := extract.All(opts.Extract)

	// The extractors are independent and read-only over the snapshot, so
	// they run concurrently. Results land in index-ordered slots: dedup is
	// first-seen-wins, and the winning source must not depend on
	// goroutine scheduling.
	slots := make([][]models.RawCandidate, len(extractors))
	var wg sync.WaitGroup
	for i, ex := range extractors {
		wg.Add(1)
		go func(i int, ex extract.Extractor) {
			defer wg.Done()
			slots[i] = ex.Extract(page)
		}(i, ex)
	}
	wg.Wait()

	var candidates []models.RawCandidate
	for i, ex := range extractors {
		stats.CandidatesByExtractor[ex.Name()] = len(slots[i])
		candidates = append(candidates, slots[i]...)
	}

	norm := normalizer.New(opts.Normalizer)
	transactions := make([]models.Transaction, 0, len(candidates))
	for _, c := range candidates {
		tx, err := norm.Normalize(c)
		if err != nil {
			var parseErr *parsererror.ParseError
			if errors.As(err, &parseErr) && parseErr.Field == "amount" {
				stats.DiscardedAmount++
			} else {
				stats.DiscardedDate++
			}
			log.Debug("Discarding candidate",
				logging.Field{Key: "source", Value: c.SourceTag},
				logging.Field{Key: "reason", Value: err.Error()})
			continue
		}
		transactions = append(transactions, tx)
	}

	prefixLen := opts.DedupPrefixLen
	if prefixLen <= 0 {
		prefixLen = DefaultDedupPrefixLen
	}
	deduped := MergeAndDedup(transactions, prefixLen)
	stats.DuplicatesRemoved = len(transactions) - len(deduped)

	result := deduped
	if opts.Start != nil || opts.End != nil {
		result = FilterByRange(deduped, opts.Start, opts.End)
		stats.FilteredOut = len(deduped) - len(result)
	}

	log.Info("Extraction pipeline finished",
		logging.Field{Key: logging.FieldCandidates, Value: len(candidates)},
		logging.Field{Key: logging.FieldDiscarded, Value: stats.DiscardedDate + stats.DiscardedAmount},
		logging.Field{Key: logging.FieldDuplicates, Value: stats.DuplicatesRemoved},
		logging.Field{Key: logging.FieldCount, Value: len(result)})

	return result, stats, nil
}
