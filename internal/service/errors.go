package service

import (
	"errors"

	"github.com/renato-web/Profluxo/internal/repository"
)

var (
	ErrNoSession           = errors.New("not logged in")
	ErrAlreadyLoggedIn     = errors.New("already logged in; log out first")
	ErrUnknownRole         = errors.New("unknown role")
	ErrUnknownCollaborator = errors.New("collaborator not found in the roster")
	ErrInvalidPassword     = errors.New("invalid manager password")
	ErrNotCollaborator     = errors.New("only collaborators log tasks")
	ErrNotManager          = errors.New("only managers can view the dashboard")
	ErrTaskNotInCatalog    = errors.New("task is not in the catalog for this job title")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidEntry        = errors.New("invalid entry")
	ErrEmptyDraft          = errors.New("select at least one task before submitting")
	ErrAlreadySubmitted    = errors.New("entry already submitted; start a new record")
	ErrNotSubmitted        = errors.New("nothing submitted yet")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrNotOwner            = errors.New("collaborators can only delete their own entries")
)

// NeedsRemediation reports whether err calls for the schema repair
// instructions instead of a plain error message.
func NeedsRemediation(err error) bool {
	return errors.Is(err, repository.ErrSchemaMissing) || errors.Is(err, repository.ErrPermissionDenied)
}
