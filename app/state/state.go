// Package state is the fast-path store: one JSON document holding members,
// chores, current-period completions and prefs. It is authoritative for
// "is this done right now"; the durable ledger is a derived projection.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"chorewheel/app/models"
)

// FileStore reads and writes the state document at a fixed path.
// Last write wins; Save replaces the whole document atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store for the given path. Nothing is read until
// Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the state file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the state document. A missing file seeds the default household
// and writes it; an unreadable document falls back to the default without
// touching the file.
func (s *FileStore) Load() (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		st := DefaultState()
		if err := s.write(st); err != nil {
			return nil, fmt.Errorf("seed state file: %w", err)
		}
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st models.State
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("state file unreadable, using defaults", "path", s.path, "error", err)
		return DefaultState(), nil
	}
	applyDefaults(&st)
	return &st, nil
}

// Save replaces the state document. The write goes to a temp file in the
// same directory and is renamed into place so readers never see a partial
// document.
func (s *FileStore) Save(st *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(st)
}

func (s *FileStore) write(st *models.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".chorewheel-state-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func applyDefaults(st *models.State) {
	if st.Members == nil {
		st.Members = []models.Member{}
	}
	if st.Chores == nil {
		st.Chores = []models.Chore{}
	}
	if st.Completions == nil {
		st.Completions = map[string]map[string]models.CompletionRecord{}
	}
}
