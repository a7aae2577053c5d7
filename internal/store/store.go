package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"medstore/m/domain"
)

// Store persists the medicine catalog as a single JSON document on disk.
// Every mutation rewrites the file wholesale; the write goes to a temp file
// in the same directory and is renamed into place, so a reader never sees a
// partially-written catalog.
type Store struct {
	path    string
	startID int64
}

// New returns a store backed by the file at path. startID is the first ID
// handed out when the catalog is empty.
func New(path string, startID int64) *Store {
	return &Store{path: path, startID: startID}
}

// Load reads the entire catalog. A missing file is an empty catalog, not an
// error; an unreadable or corrupt file is surfaced to the caller.
func (s *Store) Load() ([]domain.Medicine, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Medicine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var records []domain.Medicine
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}

// SaveAll replaces the catalog file contents with exactly the given records,
// in the given order.
func (s *Store) SaveAll(records []domain.Medicine) error {
	if records == nil {
		records = []domain.Medicine{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".catalog-*")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// NextID derives the next medicine ID from the given records: max(id)+1, or
// the configured start ID for an empty catalog. Deleted IDs are never reused
// because the maximum only grows while records exist.
func (s *Store) NextID(records []domain.Medicine) int64 {
	if len(records) == 0 {
		return s.startID
	}
	maxID := records[0].ID
	for _, m := range records[1:] {
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	return maxID + 1
}
