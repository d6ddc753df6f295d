package domain

import "errors"

// DefaultProductivityScore is written on every submission; it is not computed.
const DefaultProductivityScore = 100

// TaskLog is one persisted daily submission.
type TaskLog struct {
	ID                string
	Date              string
	User              string
	Role              JobTitle
	Tasks             []string
	ProductivityScore int
}

// TaskCount returns the number of tasks in the entry.
func (l TaskLog) TaskCount() int {
	return len(l.Tasks)
}

// NewTaskLog is the payload sent to the row store. The store assigns the ID.
type NewTaskLog struct {
	Date              string
	User              string
	Role              JobTitle
	Tasks             []string
	ProductivityScore int
}

var (
	ErrNoTasks      = errors.New("entry must contain at least one task")
	ErrUserRequired = errors.New("entry user is required")
)

// Validate checks the invariants of a submission before it leaves the client.
func (n NewTaskLog) Validate() error {
	if len(n.Tasks) == 0 {
		return ErrNoTasks
	}
	if n.User == "" {
		return ErrUserRequired
	}
	if _, err := ParseDay(n.Date); err != nil {
		return err
	}
	return nil
}
