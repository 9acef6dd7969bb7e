package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS issuer_tables (
	id         UUID PRIMARY KEY,
	issuer     TEXT NOT NULL,
	updated    DATE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS issuer_tables_issuer_key ON issuer_tables (lower(issuer));

CREATE TABLE IF NOT EXISTS fee_tiers (
	table_id     UUID NOT NULL REFERENCES issuer_tables (id) ON DELETE CASCADE,
	installments INTEGER NOT NULL CHECK (installments >= 1),
	mdr          DOUBLE PRECISION NOT NULL,
	rr           DOUBLE PRECISION NOT NULL,
	total        DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (table_id, installments)
);
`

// Migrate creates the fee table schema when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	return nil
}
