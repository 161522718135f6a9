package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as a single JSON file under a base
// directory. Writes go through a temp file plus rename so a crash mid-save
// never leaves a truncated snapshot behind.
type FileStore struct {
	path string
}

// NewFileStore ensures the directory exists and returns a store writing
// `<dir>/<key>.json`.
func NewFileStore(dir, key string) (*FileStore, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, key+".json")}, nil
}

// Load reads the snapshot file.
func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Save writes the snapshot atomically.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Path exposes the underlying file path (useful for debugging).
func (s *FileStore) Path() string {
	return s.path
}
