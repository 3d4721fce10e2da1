package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements run in order; each is idempotent so startup can run them on
// every boot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS drivers (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		vehicle         TEXT NOT NULL,
		rate_per_km     NUMERIC(10,2) NOT NULL,
		min_distance_km INTEGER NOT NULL DEFAULT 0,
		rating          NUMERIC(3,1) NOT NULL DEFAULT 0,
		review_comment  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS rides (
		id              TEXT PRIMARY KEY,
		customer_id     TEXT NOT NULL,
		origin          TEXT NOT NULL,
		destination     TEXT NOT NULL,
		distance_km     NUMERIC(10,2) NOT NULL,
		duration        TEXT NOT NULL,
		value           NUMERIC(10,2) NOT NULL,
		driver_id       TEXT NOT NULL REFERENCES drivers(id),
		origin_lat      DOUBLE PRECISION NOT NULL,
		origin_lng      DOUBLE PRECISION NOT NULL,
		destination_lat DOUBLE PRECISION NOT NULL,
		destination_lng DOUBLE PRECISION NOT NULL,
		status          TEXT NOT NULL DEFAULT 'active',
		created_at      TIMESTAMPTZ NOT NULL,
		completed_at    TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_customer_created ON rides (customer_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_status_created ON rides (status, created_at DESC)`,
}

// Migrate creates the schema when absent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
