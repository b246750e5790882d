package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/krxdash/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceCacheRepository handles database operations for price caching
type PriceCacheRepository struct {
	pool *pgxpool.Pool
}

// PriceRange represents the cached date range for a ticker's prices
type PriceRange struct {
	Ticker     string
	StartDate  time.Time
	EndDate    time.Time
	NextUpdate time.Time
}

var schema = []string{`
	CREATE TABLE IF NOT EXISTS krx_price (
		ticker  CHAR(6)          NOT NULL,
		date    DATE             NOT NULL,
		open    DOUBLE PRECISION NOT NULL,
		high    DOUBLE PRECISION NOT NULL,
		low     DOUBLE PRECISION NOT NULL,
		close   DOUBLE PRECISION NOT NULL,
		volume  BIGINT           NOT NULL,
		PRIMARY KEY (ticker, date)
	)`, `
	CREATE TABLE IF NOT EXISTS krx_price_range (
		ticker      CHAR(6)     PRIMARY KEY,
		start_date  DATE        NOT NULL,
		end_date    DATE        NOT NULL,
		next_update TIMESTAMPTZ NOT NULL
	)`,
}

// NewPriceCacheRepository creates a new PriceCacheRepository
func NewPriceCacheRepository(pool *pgxpool.Pool) *PriceCacheRepository {
	return &PriceCacheRepository{pool: pool}
}

// EnsureSchema creates the cache tables if they do not exist yet
func (r *PriceCacheRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create price cache schema: %w", err)
		}
	}
	return nil
}

// GetDailyPrices retrieves cached daily prices for a ticker within a date range
func (r *PriceCacheRepository) GetDailyPrices(ctx context.Context, ticker string, startDate, endDate time.Time) ([]models.PriceData, error) {
	query := `
		SELECT date, open, high, low, close, volume
		FROM krx_price
		WHERE ticker = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	rows, err := r.pool.Query(ctx, query, ticker, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query price cache: %w", err)
	}
	defer rows.Close()

	prices := []models.PriceData{}
	for rows.Next() {
		var p models.PriceData
		if err := rows.Scan(&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price data: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// StoreDailyPrices upserts daily prices for a ticker
func (r *PriceCacheRepository) StoreDailyPrices(ctx context.Context, ticker string, prices []models.PriceData) error {
	if len(prices) == 0 {
		return nil
	}

	query := `
		INSERT INTO krx_price (ticker, date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker, date) DO UPDATE
		SET open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
		    close = EXCLUDED.close, volume = EXCLUDED.volume
	`

	batch := &pgx.Batch{}
	for _, p := range prices {
		batch.Queue(query, ticker, p.Date, p.Open, p.High, p.Low, p.Close, p.Volume)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range prices {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to cache price: %w", err)
		}
	}
	return nil
}

// GetPriceRange retrieves the cached date range for a ticker.
// It returns nil, nil when nothing has been cached yet.
func (r *PriceCacheRepository) GetPriceRange(ctx context.Context, ticker string) (*PriceRange, error) {
	query := `
		SELECT ticker, start_date, end_date, next_update
		FROM krx_price_range
		WHERE ticker = $1
	`
	pr := &PriceRange{}
	err := r.pool.QueryRow(ctx, query, ticker).Scan(
		&pr.Ticker, &pr.StartDate, &pr.EndDate, &pr.NextUpdate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}
	return pr, nil
}

// UpsertPriceRange inserts or updates the cached date range for a ticker.
// It expands the range using LEAST/GREATEST to merge with existing data.
func (r *PriceCacheRepository) UpsertPriceRange(ctx context.Context, ticker string, startDate, endDate, nextUpdate time.Time) error {
	query := `
		INSERT INTO krx_price_range (ticker, start_date, end_date, next_update)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker) DO UPDATE
		SET start_date = LEAST(krx_price_range.start_date, EXCLUDED.start_date),
		    end_date = GREATEST(krx_price_range.end_date, EXCLUDED.end_date),
		    next_update = EXCLUDED.next_update
	`
	_, err := r.pool.Exec(ctx, query, ticker, startDate, endDate, nextUpdate)
	if err != nil {
		return fmt.Errorf("failed to upsert price range: %w", err)
	}
	return nil
}
