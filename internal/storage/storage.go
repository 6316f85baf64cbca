package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mjaros/housing-monitor/internal/state"
)

// Store persists the monitor snapshot as a single JSON file.
type Store struct {
	path string
}

// New creates a Store backed by the state file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted snapshot. A missing file returns (nil, nil) —
// no prior state is known. Any other read or decode failure is returned; the
// caller logs it and proceeds as if no prior state existed.
func (s *Store) Load() (*state.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}

	return &snap, nil
}

// Save overwrites the state file with snap. The write goes through a
// temporary file and a rename so a crash mid-write cannot leave a truncated
// state file behind.
func (s *Store) Save(snap *state.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing state file: %w", err)
	}

	return nil
}
