package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvillar/bankinter-csv/internal/models"
	"jvillar/bankinter-csv/internal/parsererror"
)

func movement(day int, desc string, amount float64) models.Transaction {
	return models.Transaction{
		Date:        time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.NewFromFloat(amount),
	}
}

func TestRecordFromTransaction(t *testing.T) {
	record := RecordFromTransaction(movement(27, "TRANS INM GARCIA BAENA", 27.00))

	assert.Equal(t, "2025-08-27", record.Date)
	assert.Equal(t, "TRANS INM GARCIA BAENA", record.Concept)
	assert.True(t, record.Amount.Equal(decimal.NewFromFloat(27.00)))
	assert.Equal(t, DefaultCategory, record.Category)
}

func TestUpload(t *testing.T) {
	t.Run("Created movement", func(t *testing.T) {
		var received UploadRecord
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/financial-movements", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "test-token", time.Second)
		created, err := uploader.Upload(context.Background(), movement(27, "TRANS INM", 27.00))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "2025-08-27", received.Date)
		assert.Equal(t, "Uncategorized", received.Category)
	})

	t.Run("Conflict status means duplicate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "", time.Second)
		created, err := uploader.Upload(context.Background(), movement(27, "TRANS INM", 27.00))
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Already-exists body means duplicate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Movement already exists"}`))
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "", time.Second)
		created, err := uploader.Upload(context.Background(), movement(27, "TRANS INM", 27.00))
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Server error surfaces as UploadError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "", time.Second)
		_, err := uploader.Upload(context.Background(), movement(27, "TRANS INM", 27.00))
		require.Error(t, err)

		var uploadErr *parsererror.UploadError
		require.ErrorAs(t, err, &uploadErr)
		assert.Equal(t, http.StatusInternalServerError, uploadErr.StatusCode)
		assert.Equal(t, "boom", uploadErr.Body)
	})

	t.Run("No Authorization header without a token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "", time.Second)
		_, err := uploader.Upload(context.Background(), movement(27, "TRANS INM", 27.00))
		require.NoError(t, err)
	})
}

func TestUploadAll(t *testing.T) {
	t.Run("Continues past individual failures", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			switch calls {
			case 1:
				w.WriteHeader(http.StatusCreated)
			case 2:
				w.WriteHeader(http.StatusConflict)
			default:
				w.WriteHeader(http.StatusInternalServerError)
			}
		}))
		defer server.Close()

		uploader := NewUploader(server.URL, "", time.Second)
		summary, err := uploader.UploadAll(context.Background(), []models.Transaction{
			movement(27, "A", 1),
			movement(26, "B", 2),
			movement(25, "C", 3),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 1, summary.Duplicates)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, 3, calls)
	})

	t.Run("Cancelled context stops the run", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		uploader := NewUploader(server.URL, "", time.Second)
		summary, err := uploader.UploadAll(ctx, []models.Transaction{movement(27, "A", 1)})
		require.Error(t, err)
		assert.Zero(t, summary.Created)
	})

	t.Run("Empty list is a no-op", func(t *testing.T) {
		uploader := NewUploader("http://localhost:0", "", time.Second)
		summary, err := uploader.UploadAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, summary.Created+summary.Duplicates+summary.Failed)
	})
}
