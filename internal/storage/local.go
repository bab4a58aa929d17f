package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage manages the directory holding generated cheque PDFs.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveBytes writes data under the base directory and returns the full path.
func (s *LocalStorage) SaveBytes(data []byte, filename string) (string, error) {
	path := filepath.Join(s.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, filename))
	return err == nil
}

// FullPath returns the absolute path of a stored file
func (s *LocalStorage) FullPath(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// BasePath returns the storage root
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// PurgeOlderThan removes generated PDFs older than maxAge and returns how
// many were deleted. Only .pdf files are touched.
func (s *LocalStorage) PurgeOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read storage directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.basePath, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
