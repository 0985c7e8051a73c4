package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists one record per appointment id. Save is a last-write-wins
// overwrite and Load of an unknown id returns ErrNotFound. There is no
// atomic compare-and-swap: callers narrow the duplicate-response race with a
// load-before-save check, which is documented as an accepted limitation.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
}

// FileStore keeps one <id>.json artifact per appointment under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("appointments: store directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("appointments: create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save overwrites the record artifact for its id.
func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrMissingID
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("appointments: encode record %s: %w", rec.ID, err)
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0o644); err != nil {
		return fmt.Errorf("appointments: write record %s: %w", rec.ID, err)
	}
	return nil
}

// Load reads the record for id, or ErrNotFound when no response was ever
// recorded.
func (s *FileStore) Load(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: read record %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("appointments: decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *FileStore) path(id string) string {
	// The id is a hex digest, but never trust it as a path component.
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}
