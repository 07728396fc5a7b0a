// Package dirstore persists collection CSVs as plain files in a local
// directory, the equivalent of the original's user-granted folder.
package dirstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"budgetbook/internal/persist"
)

type Store struct {
	base string
}

// New creates the directory if needed and returns a store rooted there.
func New(base string) (*Store, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{base: base}, nil
}

var _ persist.Backend = (*Store)(nil)

// Write replaces the file contents. The write goes through a temp file and
// rename so a crash mid-write never leaves a half-written CSV behind.
func (s *Store) Write(_ context.Context, fileName, content string) error {
	target := filepath.Join(s.base, filepath.Base(fileName))
	tmp, err := os.CreateTemp(s.base, filepath.Base(fileName)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", fileName, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", fileName, err)
	}
	return nil
}

// Read returns the file contents, or persist.ErrNotFound for a file that
// was never written.
func (s *Store) Read(_ context.Context, fileName string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.base, filepath.Base(fileName)))
	if os.IsNotExist(err) {
		return "", persist.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileName, err)
	}
	return string(data), nil
}

// Base returns the backing directory path.
func (s *Store) Base() string {
	return s.base
}
