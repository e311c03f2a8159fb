// Package memstore keeps artifacts in memory. Useful for tests and for
// embedders that manage persistence themselves.
package memstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/user/mediapress/pkg/ports"
)

// ErrNotFound is returned for unknown artifact ids.
var ErrNotFound = errors.New("memstore: artifact not found")

// Store is a map-backed ArtifactStore, safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Put stores a copy of the bytes under a fresh id.
func (s *Store) Put(data []byte) (string, error) {
	id := uuid.NewString()
	blob := make([]byte, len(data))
	copy(blob, data)

	s.mu.Lock()
	s.blobs[id] = blob
	s.mu.Unlock()
	return id, nil
}

// Get returns the bytes for the given id.
func (s *Store) Get(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return blob, nil
}

// Delete removes the artifact.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.blobs, id)
	return nil
}

// Len returns the number of stored artifacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

var _ ports.ArtifactStore = (*Store)(nil)
