// Package session persists the logged-in identity and the form draft
// between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/renato-web/Profluxo/internal/domain"
)

// FileName is the session file inside the application home directory.
const FileName = "session.json"

// State is everything that survives between commands. A nil Session means
// logged out.
type State struct {
	Session *domain.Session `json:"session,omitempty"`
	Draft   domain.Draft    `json:"draft"`
}

// FileStore keeps State in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the session file under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the session file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the saved state. A missing file is an empty state. A file that
// does not parse is removed and also treated as an empty state.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil || !valid(st) {
		slog.Warn("discarding unreadable session file", "path", s.path, "error", err)
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return State{}, fmt.Errorf("removing corrupt session: %w", rmErr)
		}
		return State{}, nil
	}
	return st, nil
}

// Save writes state atomically.
func (s *FileStore) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), FileName+".*")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear deletes the session file. Clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// valid rejects files that parse but cannot describe a real session.
func valid(st State) bool {
	if st.Session == nil {
		return true
	}
	if st.Session.Name == "" {
		return false
	}
	_, err := domain.ParseUserRole(string(st.Session.Role))
	return err == nil
}
