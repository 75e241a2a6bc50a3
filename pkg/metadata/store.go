// Package metadata persists capture session state as a JSON file.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/snapdoc/pkg/capture"
)

// ErrStoreNotFound is returned by Read when no session has been
// persisted yet. Callers load fresh task definitions instead.
var ErrStoreNotFound = errors.New("no persisted session found")

// FileStore implements capture.Store using a JSON file. Writes go
// through a temp file and rename so the caller never observes a
// partially written store.
type FileStore struct {
	path string
}

// NewFileStore creates a file-based session store at the given path.
// If path is empty, defaults to .snapdoc/session.json in the working
// directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(".snapdoc", "session.json")
	}
	return &FileStore{path: path}
}

// Read loads the persisted session. Returns ErrStoreNotFound when the
// file does not exist.
func (s *FileStore) Read() (*capture.Session, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	defer file.Close()

	var session capture.Session
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session store: %w", err)
	}

	return &session, nil
}

// Write persists the session, replacing any previous state.
func (s *FileStore) Write(session *capture.Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(session); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}
