package blobstore

import (
	"context"
	"errors"
	"sync"

	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/utils"
)

var errDeleteFailed = errors.New("blob delete failed")

// MemoryStore keeps blobs in a map. It serves the "memory" storage type and
// records deletions so cascade behavior can be asserted in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string]*library.Blob
	deleted []string

	// FailDeletes makes every Delete fail; used to exercise best-effort
	// cleanup paths in tests.
	FailDeletes bool
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]*library.Blob)}
}

// Store keeps a copy of the blob under a generated id.
func (s *MemoryStore) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := utils.GenerateUUID()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.blobs[id] = &library.Blob{
		Data:        copied,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	return id, nil
}

// Fetch returns the blob under id, or (nil, nil) when absent.
func (s *MemoryStore) Fetch(ctx context.Context, id string) (*library.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[id]
	if !ok {
		return nil, nil
	}
	return blob, nil
}

// Delete removes the blob under id and records the deletion.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDeletes {
		return errDeleteFailed
	}
	delete(s.blobs, id)
	s.deleted = append(s.deleted, id)
	return nil
}

// Deleted returns the ids passed to Delete, in order.
func (s *MemoryStore) Deleted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.deleted))
	copy(out, s.deleted)
	return out
}

// Len reports the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
