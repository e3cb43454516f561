// Package docstore provides the document store implementations that persist
// artist aggregates: MongoDB, GORM-backed SQL (sqlite/postgres), and an
// in-memory store for tests and development.
package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/maestrokit/maestro/internal/library"
)

// MemoryStore keeps artist aggregates in a map. It serves the "memory"
// database type and doubles as the collaborator fake in tests, the way the
// original service was tested against an in-memory database.
type MemoryStore struct {
	mu      sync.RWMutex
	artists map[string]*library.Artist
}

// NewMemoryStore creates an empty in-memory artist store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artists: make(map[string]*library.Artist)}
}

// FindAll returns every artist ordered by name.
func (s *MemoryStore) FindAll(ctx context.Context, order library.SortOrder) ([]library.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]library.Artist, 0, len(s.artists))
	for _, artist := range s.artists {
		out = append(out, *cloneArtist(artist))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == library.NameAscending {
			return out[i].Name < out[j].Name
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// FindByID returns the artist under id, or (nil, nil) when absent.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*library.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artist, ok := s.artists[id]
	if !ok {
		return nil, nil
	}
	return cloneArtist(artist), nil
}

// FindByName returns the first artist with the given name, or (nil, nil).
func (s *MemoryStore) FindByName(ctx context.Context, name string) (*library.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, artist := range s.artists {
		if artist.Name == name {
			return cloneArtist(artist), nil
		}
	}
	return nil, nil
}

// Save stores a copy of the whole aggregate, replacing any document with the
// same id.
func (s *MemoryStore) Save(ctx context.Context, artist *library.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artists[artist.ID] = cloneArtist(artist)
	return nil
}

// DeleteByID removes the artist under id.
func (s *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.artists, id)
	return nil
}

// Len reports the number of stored artists.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.artists)
}

// cloneArtist deep-copies an aggregate through JSON, which preserves the
// nil-vs-empty distinction of the nested lists.
func cloneArtist(artist *library.Artist) *library.Artist {
	data, err := json.Marshal(artist)
	if err != nil {
		// The aggregate is plain data; marshaling cannot fail.
		panic(err)
	}
	var out library.Artist
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}
