package repository

import (
	"context"

	"github.com/renato-web/Profluxo/internal/domain"
)

// RowStore is the task-log table. Rows are returned newest first.
// Entries are never updated in place.
type RowStore interface {
	SelectAll(ctx context.Context) ([]domain.TaskLog, error)
	InsertOne(ctx context.Context, entry domain.NewTaskLog) error
	DeleteOne(ctx context.Context, id string) error
}

// DefaultTable is the name of the hosted task-log table.
const DefaultTable = "task_logs"
