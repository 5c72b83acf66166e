// Package store keeps a local sqlite mirror of extracted movements, so a
// scraping run can be inspected and re-uploaded without hitting the bank
// again.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jvillar/bankinter-csv/internal/models"
)

// Movement is the stored form of a transaction. The composite unique index
// mirrors the pipeline's dedup identity, so saving an overlapping window
// twice cannot produce duplicate rows.
type Movement struct {
	gorm.Model
	ValueDate   time.Time `gorm:"uniqueIndex:idx_movement_identity"`
	Description string    `gorm:"uniqueIndex:idx_movement_identity"`
	Amount      string    `gorm:"uniqueIndex:idx_movement_identity"` // decimal rendered with 2 places
	Balance     string
	Reference   string
}

// Database wraps the sqlite connection.
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the sqlite file and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&Movement{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Database{db: db}, nil
}

// SaveTransactions inserts the transactions, skipping ones the unique index
// already holds. Returns how many were created and how many were skipped as
// duplicates.
func (d *Database) SaveTransactions(transactions []models.Transaction) (created, duplicates int, err error) {
	for _, tx := range transactions {
		movement := Movement{
			ValueDate:   tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Reference:   tx.Reference,
		}
		if tx.Balance != nil {
			movement.Balance = tx.Balance.StringFixed(2)
		}

		if saveErr := d.db.Create(&movement).Error; saveErr != nil {
			if strings.Contains(saveErr.Error(), "UNIQUE constraint failed") {
				duplicates++
				continue
			}
			return created, duplicates, fmt.Errorf("failed to save movement: %w", saveErr)
		}
		created++
	}
	return created, duplicates, nil
}

// ListBetween returns stored movements with start <= value date <= end,
// most recent first.
func (d *Database) ListBetween(start, end time.Time) ([]models.Transaction, error) {
	var movements []Movement
	err := d.db.
		Where("value_date >= ? AND value_date <= ?", start, end).
		Order("value_date DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(movements))
	for _, m := range movements {
		tx := models.Transaction{
			Date:        m.ValueDate,
			Description: m.Description,
			Reference:   m.Reference,
		}
		if amount, err := decimal.NewFromString(m.Amount); err == nil {
			tx.Amount = amount
		}
		if m.Balance != "" {
			if balance, err := decimal.NewFromString(m.Balance); err == nil {
				tx.Balance = &balance
			}
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// Close releases the underlying connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
