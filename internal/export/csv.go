// Package export hands the finished transaction list to the outside world:
// a delimited file for manual inspection, or the movements backend over
// HTTP.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Delimiter used for CSV output. Tab-separated output for pasting into
// spreadsheets is a single SetDelimiter('\t') away.
var Delimiter rune = ','

// SetDelimiter changes the CSV output delimiter.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// csvRow is the inspection-file shape of a transaction.
type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Balance     string `csv:"Balance"`
}

func toRow(tx models.Transaction) csvRow {
	row := csvRow{
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
	}
	if tx.Balance != nil {
		row.Balance = tx.Balance.StringFixed(2)
	}
	return row
}

// WriteTransactionsToCSV writes the transactions to a delimited file with a
// Date, Description, Amount, Balance header. An empty transaction list
// still produces the header, so "zero movements" is visible in the output.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(Delimiter)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteTransactions(transactions, file)
}

// WriteTransactions writes the transactions to w in CSV form.
func WriteTransactions(transactions []models.Transaction, w io.Writer) error {
	rows := make([]csvRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, toRow(tx))
	}

	writer := csv.NewWriter(w)
	writer.Comma = Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}
