package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/parsererror"
)

// DefaultCategory is what every uploaded movement starts life as; the
// rule-engine collaborator reclassifies later.
const DefaultCategory = "Uncategorized"

// movementsPath is the backend collection the movements are posted to.
const movementsPath = "/financial-movements"

// UploadRecord is the persisted record shape the backend accepts.
type UploadRecord struct {
	Date     string          `json:"date"` // ISO-8601
	Concept  string          `json:"concept"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// RecordFromTransaction converts a transaction to its upload shape.
func RecordFromTransaction(tx models.Transaction) UploadRecord {
	return UploadRecord{
		Date:     tx.Date.Format("2006-01-02"),
		Concept:  tx.Description,
		Amount:   tx.Amount,
		Category: DefaultCategory,
	}
}

// UploadSummary counts the outcome of an upload run. Duplicates are a
// normal outcome: re-running the scraper over an overlapping window is the
// common case, and the backend answers 409 for movements it already holds.
type UploadSummary struct {
	Created    int
	Duplicates int
	Failed     int
}

// Uploader posts movements to the bookkeeping backend one at a time.
type Uploader struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewUploader builds an Uploader for the given backend. The token may be
// empty when the backend is reached over a trusted channel.
func NewUploader(baseURL, token string, timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Uploader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// UploadAll posts every transaction, continuing past individual failures.
// It returns early only when the context is cancelled.
func (u *Uploader) UploadAll(ctx context.Context, transactions []models.Transaction) (UploadSummary, error) {
	var summary UploadSummary
	for _, tx := range transactions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		created, err := u.Upload(ctx, tx)
		switch {
		case err != nil:
			summary.Failed++
			log.WithError(err).Warn("Movement upload failed",
				logging.Field{Key: logging.FieldDate, Value: tx.Date.Format("2006-01-02")},
				logging.Field{Key: logging.FieldAmount, Value: tx.Amount.StringFixed(2)})
		case created:
			summary.Created++
		default:
			summary.Duplicates++
		}
	}

	log.Info("Upload run finished",
		logging.Field{Key: "created", Value: summary.Created},
		logging.Field{Key: logging.FieldDuplicates, Value: summary.Duplicates},
		logging.Field{Key: "failed", Value: summary.Failed})
	return summary, nil
}

// Upload posts one transaction. It returns true when the backend created
// the movement and false when it already existed (HTTP 409 or an
// "already exists" body). Anything else is an UploadError.
func (u *Uploader) Upload(ctx context.Context, tx models.Transaction) (bool, error) {
	payload, err := json.Marshal(RecordFromTransaction(tx))
	if err != nil {
		return false, fmt.Errorf("failed to encode movement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+movementsPath, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("movement upload request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusCreated:
		return true, nil
	case resp.StatusCode == http.StatusConflict,
		strings.Contains(strings.ToLower(string(body)), "already exists"):
		return false, nil
	default:
		return false, &parsererror.UploadError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
