// Package storage provides the artifact store backends for trained model
// blobs: a local filesystem store and an S3 store, selected by configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/FluentFlier/aegis/internal/domain/port"
)

// Compile-time interface check.
var _ port.ArtifactStore = (*FileStore)(nil)

// FileStore implements port.ArtifactStore on the local filesystem. Writes go
// through a temp file and rename so a reader never observes a partial blob.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a filesystem artifact store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure artifact dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put stores the blob under the given reference, overwriting any previous
// content.
func (s *FileStore) Put(ctx context.Context, ref string, data []byte) error {
	if err := validateRef(ref); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, ref)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", ref, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to commit artifact %s: %w", ref, err)
	}

	return nil
}

// Get retrieves the blob stored under the given reference.
func (s *FileStore) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s", ref)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", ref, err)
	}

	return data, nil
}

// validateRef keeps references inside the store: refs are single path
// components, never paths.
func validateRef(ref string) error {
	if ref == "" || strings.ContainsAny(ref, `/\`) || strings.Contains(ref, "..") {
		return fmt.Errorf("invalid artifact ref: %q", ref)
	}
	return nil
}
