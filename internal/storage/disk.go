// Package storage holds the file-upload collaborator. Only the local
// disk implementation lives here; the task domain depends on the
// task.FileStore interface, not on this package.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes uploaded files under a base directory. Stored paths
// keep the base directory prefix so they always point at the written
// file, whatever directory is configured.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// Save writes the file and returns its path under the base directory.
func (s *DiskStore) Save(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}
