// Package common provides the snapshot-to-transactions steps shared by the
// extraction commands.
package common

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"jvillar/bankinter-csv/internal/config"
	"jvillar/bankinter-csv/internal/dateutils"
	"jvillar/bankinter-csv/internal/extract"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/normalizer"
	"jvillar/bankinter-csv/internal/pipeline"
	"jvillar/bankinter-csv/internal/snapshot"
)

// LoadSnapshot reads the snapshot files named on the command line. Either
// path may be empty; the pipeline itself rejects a snapshot with neither
// markup nor text.
func LoadSnapshot(htmlFile, textFile string) (*snapshot.Page, error) {
	var markup, text, source string

	if htmlFile != "" {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return nil, fmt.Errorf("error reading snapshot HTML: %w", err)
		}
		markup = string(data)
		source = htmlFile
	}
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("error reading snapshot text: %w", err)
		}
		text = string(data)
		if source == "" {
			source = textFile
		}
	}

	return snapshot.New(markup, text, source), nil
}

// ResolveRange turns the --from/--to/--all flags into pipeline bounds.
// With no flags the window defaults to the first of the current month
// through today, matching how the scraper is run day to day.
func ResolveRange(from, to string, all bool) (*time.Time, *time.Time, error) {
	if all {
		return nil, nil, nil
	}

	start := dateutils.StartOfMonth(dateutils.Today())
	end := dateutils.Today()

	if from != "" {
		parsed, err := dateutils.ParseDate(from)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		start = parsed
	}
	if to != "" {
		parsed, err := dateutils.ParseDate(to)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end = parsed
	}

	return &start, &end, nil
}

// RunPipeline executes the extraction pipeline with the configured options
// and logs the per-stage counters.
func RunPipeline(page *snapshot.Page, cfg *config.Config, start, end *time.Time, log *logrus.Logger) ([]models.Transaction, error) {
	opts := pipeline.Options{
		Extract: extract.Options{
			MaxScriptMatches: cfg.Extract.MaxScriptMatches,
		},
		Normalizer: normalizer.Options{
			DescriptionMaxLen: cfg.Extract.DescriptionMaxLen,
			PhrasesFile:       cfg.Extract.PhrasesFile,
		},
		DedupPrefixLen: cfg.Extract.DedupPrefixLen,
		Start:          start,
		End:            end,
	}

	transactions, stats, err := pipeline.Run(page, opts)
	if err != nil {
		return nil, err
	}

	for name, count := range stats.CandidatesByExtractor {
		log.Debugf("Extractor %s produced %d candidates", name, count)
	}
	if discarded := stats.DiscardedDate + stats.DiscardedAmount; discarded > 0 {
		log.Infof("%d candidates discarded (%d unparsable date, %d unparsable amount)",
			discarded, stats.DiscardedDate, stats.DiscardedAmount)
	}
	log.Infof("Extracted %d movements (%d duplicates removed, %d outside window)",
		len(transactions), stats.DuplicatesRemoved, stats.FilteredOut)

	return transactions, nil
}
