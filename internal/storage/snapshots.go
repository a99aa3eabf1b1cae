// Package storage persists fetched price history to PostgreSQL. Persistence
// is optional: the service runs fully without a database, and the recorder
// is only wired in when snapshots are enabled in configuration.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

// SnapshotRepository defines the contract for recording fetched price bars.
type SnapshotRepository interface {
	SaveBars(symbol string, bars []models.PriceBar) error
}

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a Postgres-backed snapshot recorder.
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// SaveBars stores one fetched window for a symbol in a single transaction.
// Existing rows for the same symbol and dates are replaced: COPY cannot do
// ON CONFLICT, so matching rows are deleted first, then the batch is
// COPY-inserted.
func (r *snapshotRepository) SaveBars(symbol string, bars []models.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(bars))
	for _, b := range bars {
		dates = append(dates, b.Date)
	}

	if _, err := tx.Exec(
		`DELETE FROM price_snapshots WHERE symbol = $1 AND trade_date = ANY($2::date[])`,
		symbol, pq.Array(dates),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete existing snapshots: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"price_snapshots",
		"symbol",
		"trade_date",
		"open",
		"high",
		"low",
		"close",
		"volume",
		"dividends",
		"stock_splits",
		"fetched_at",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	// map absent optionals to NULL, not 0
	toNull := func(v *float64) interface{} {
		if v == nil {
			return nil
		}
		return *v
	}

	now := time.Now().UTC()
	for _, b := range bars {
		if _, err := stmt.Exec(
			symbol,
			b.Date,
			b.Open,
			b.High,
			b.Low,
			b.Close,
			b.Volume,
			toNull(b.Dividends),
			toNull(b.StockSplits),
			now,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("copy snapshot row: %w", err)
		}
	}

	// flush the COPY buffer
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return fmt.Errorf("flush snapshot batch: %w", err)
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
