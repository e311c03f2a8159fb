// Package filestore persists artifacts as files under a base directory,
// keyed by an opaque id.
package filestore

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/user/mediapress/pkg/ports"
)

// ErrNotFound is returned for unknown artifact ids.
var ErrNotFound = errors.New("filestore: artifact not found")

// Store writes artifacts through a ports.FileSystem.
type Store struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a Store rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Store {
	return &Store{baseDir: baseDir, fs: fs}
}

// Put stores the bytes under a fresh id.
func (s *Store) Put(data []byte) (string, error) {
	id := uuid.NewString()
	if err := s.fs.WriteFile(s.path(id), data); err != nil {
		return "", fmt.Errorf("store artifact: %w", err)
	}
	return id, nil
}

// Get returns the bytes for the given id.
func (s *Store) Get(id string) ([]byte, error) {
	exists, err := s.fs.Exists(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := s.fs.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// Delete removes the artifact.
func (s *Store) Delete(id string) error {
	exists, err := s.fs.Exists(s.path(id))
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.fs.Remove(s.path(id))
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, id+".mp4")
}

var _ ports.ArtifactStore = (*Store)(nil)
