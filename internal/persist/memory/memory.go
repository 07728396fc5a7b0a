// Package memory is the fallback backend: collections live only in process
// memory. Used when no data directory is configured and as the test double.
package memory

import (
	"context"
	"sync"

	"budgetbook/internal/persist"
)

type Store struct {
	mu    sync.Mutex
	files map[string]string
}

func New() *Store {
	return &Store{files: make(map[string]string)}
}

var _ persist.Backend = (*Store)(nil)

func (s *Store) Write(_ context.Context, fileName, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[fileName] = content
	return nil
}

func (s *Store) Read(_ context.Context, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[fileName]
	if !ok {
		return "", persist.ErrNotFound
	}
	return content, nil
}

// Files returns a snapshot of the stored files, for diagnostics and tests.
func (s *Store) Files() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]string, len(s.files))
	for name, content := range s.files {
		snapshot[name] = content
	}
	return snapshot
}
