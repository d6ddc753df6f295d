package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means the store credentials are missing or malformed.
	ErrNotConfigured = errors.New("row store is not configured")
	// ErrSchemaMissing means the task-log table or one of its columns is absent.
	ErrSchemaMissing = errors.New("task log table or column is missing")
	// ErrPermissionDenied means an access policy rejected the operation.
	ErrPermissionDenied = errors.New("row store denied the operation")
)

// Error is a failure reported by the store. Kind is one of the sentinels
// above, or nil for a transient error that is shown to the user verbatim.
type Error struct {
	Op      string
	Code    string
	Message string
	Kind    error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code %s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

var (
	permissionCodes = map[string]bool{"42501": true}
	schemaCodes     = map[string]bool{"42P01": true, "42703": true, "PGRST204": true, "PGRST205": true}

	permissionSignatures = []string{"policy", "permission denied"}
	schemaSignatures     = []string{"relation", "does not exist", "column", "no such table", "no such column", "schema cache"}
)

// Classify builds an *Error from a backend code and message.
// Codes are checked before message text; permission before schema, since a
// denied statement can mention the relation it was denied on.
func Classify(op, code, message string) *Error {
	e := &Error{Op: op, Code: code, Message: message}
	switch {
	case permissionCodes[code]:
		e.Kind = ErrPermissionDenied
	case schemaCodes[code]:
		e.Kind = ErrSchemaMissing
	case containsAny(message, permissionSignatures):
		e.Kind = ErrPermissionDenied
	case containsAny(message, schemaSignatures):
		e.Kind = ErrSchemaMissing
	}
	return e
}

// IsTransient reports whether err is a store error with no recognized signature.
func IsTransient(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == nil
}

func containsAny(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
