package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are re-run on every open,
// so each one must be idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The local table mirrors the hosted task_logs table, including its quoted
// column names, so the same payload shape works against every backend.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS task_logs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	)`,

	`ALTER TABLE task_logs ADD COLUMN date TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE task_logs ADD COLUMN "user" TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE task_logs ADD COLUMN role TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE task_logs ADD COLUMN tasks TEXT NOT NULL DEFAULT '[]'`,
	`ALTER TABLE task_logs ADD COLUMN "productivityScore" INTEGER NOT NULL DEFAULT 100`,

	`CREATE INDEX IF NOT EXISTS idx_task_logs_created ON task_logs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_task_logs_date ON task_logs(date)`,
}
