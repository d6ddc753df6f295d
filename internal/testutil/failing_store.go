package testutil

import (
	"context"
	"sync/atomic"

	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/renato-web/Profluxo/internal/repository"
)

// FailingStore wraps a RowStore and returns the configured error from the
// matching operation instead of calling through. A nil error passes through.
type FailingStore struct {
	repository.RowStore
	SelectErr error
	InsertErr error
	DeleteErr error

	Selects atomic.Int32
	Inserts atomic.Int32
	Deletes atomic.Int32
}

func (s *FailingStore) SelectAll(ctx context.Context) ([]domain.TaskLog, error) {
	s.Selects.Add(1)
	if s.SelectErr != nil {
		return nil, s.SelectErr
	}
	return s.RowStore.SelectAll(ctx)
}

func (s *FailingStore) InsertOne(ctx context.Context, entry domain.NewTaskLog) error {
	s.Inserts.Add(1)
	if s.InsertErr != nil {
		return s.InsertErr
	}
	return s.RowStore.InsertOne(ctx, entry)
}

func (s *FailingStore) DeleteOne(ctx context.Context, id string) error {
	s.Deletes.Add(1)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	return s.RowStore.DeleteOne(ctx, id)
}
