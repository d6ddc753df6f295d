package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// OpenPostgres connects to the hosted Postgres database directly.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	slog.DebugContext(ctx, "Connecting to database")
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	slog.DebugContext(ctx, "Connected to database")

	return db, nil
}

// ApplyRepairSQL runs RepairSQL against a Postgres connection.
func ApplyRepairSQL(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, RepairSQL); err != nil {
		return fmt.Errorf("applying repair sql: %w", err)
	}
	return nil
}
