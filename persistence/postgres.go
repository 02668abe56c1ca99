package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresPool creates a new pgx connection pool from the given DSN
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// InitPostgresSchema creates the receipt table if it does not exist yet
func InitPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS receipt (
			id BIGSERIAL PRIMARY KEY,
			booking_id TEXT NOT NULL,
			sports_category TEXT NOT NULL,
			venue TEXT NOT NULL,
			quantity INT NOT NULL,
			total_price NUMERIC(10,2) NOT NULL,
			currency TEXT NOT NULL,
			qr_code_data TEXT NOT NULL,
			confirmed_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create receipt table: %w", err)
	}
	return nil
}
