package testutil

import (
	"database/sql"
	"testing"

	"github.com/renato-web/Profluxo/internal/db"
	"github.com/renato-web/Profluxo/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore creates a task-log store over a fresh in-memory database.
func NewTestStore(t *testing.T) *repository.SQLTaskLogRepo {
	t.Helper()
	return repository.NewSQLiteTaskLogRepo(NewTestDB(t))
}
