package numbering

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the next quote number. Implementations are not safe for
// concurrent use by several processes.
type Store interface {
	Next() (int, error)
	SetNext(n int) error
}

// state is the on-disk shape of the numbering file.
type state struct {
	NextNumber int `json:"next_number"`
	// Legacy holds the key written by the desktop tool this store replaces.
	Legacy int `json:"proximo_numero,omitempty"`
}

// FileStore keeps the next number in a small JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Next reads the persisted number. A missing file reads as 1.
func (s *FileStore) Next() (int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 1, nil
		}
		return 1, err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return 1, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	n := st.NextNumber
	if n == 0 {
		n = st.Legacy
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// SetNext writes n atomically.
func (s *FileStore) SetNext(n int) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(state{NextNumber: n}, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
