package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/renato-web/Profluxo/internal/domain"
)

var testIDCounter atomic.Int64

// TaskLog options
type TaskLogOption func(*domain.TaskLog)

func WithID(id string) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.ID = id
	}
}

func WithDate(date string) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Date = date
	}
}

func WithRole(role domain.JobTitle) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Role = role
	}
}

func WithTasks(tasks ...string) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Tasks = tasks
	}
}

// NewTestTaskLog builds an entry for user with a unique numeric id, the
// user's catalog job title (Web Designer if unknown) and one task.
func NewTestTaskLog(user string, opts ...TaskLogOption) domain.TaskLog {
	role := domain.JobWebDesigner
	if c, ok := domain.DefaultCatalog().FindCollaborator(user); ok {
		role = c.Job
	}
	l := domain.TaskLog{
		ID:                fmt.Sprintf("%d", testIDCounter.Add(1)),
		Date:              domain.Today(),
		User:              user,
		Role:              role,
		ProductivityScore: domain.DefaultProductivityScore,
	}
	l.Tasks = []string{domain.DefaultCatalog().TasksFor(role)[0]}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// NewEntryFrom converts a fixture into an insert payload.
func NewEntryFrom(l domain.TaskLog) domain.NewTaskLog {
	return domain.NewTaskLog{
		Date:              l.Date,
		User:              l.User,
		Role:              l.Role,
		Tasks:             l.Tasks,
		ProductivityScore: l.ProductivityScore,
	}
}
