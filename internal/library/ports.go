package library

import (
	"context"
)

// SortOrder selects the artist listing order.
type SortOrder int

const (
	// NameDescending lists artists from Z to A, the order the API serves.
	NameDescending SortOrder = iota
	// NameAscending lists artists from A to Z.
	NameAscending
)

// ArtistStore persists whole artist aggregates. Lookups that find nothing
// return (nil, nil); an error always means the store itself failed.
type ArtistStore interface {
	FindAll(ctx context.Context, order SortOrder) ([]Artist, error)
	FindByID(ctx context.Context, id string) (*Artist, error)
	FindByName(ctx context.Context, name string) (*Artist, error)
	// Save writes the entire aggregate, replacing any document with the
	// same id.
	Save(ctx context.Context, artist *Artist) error
	DeleteByID(ctx context.Context, id string) error
}

// Blob is opaque binary content together with its upload metadata.
type Blob struct {
	Data        []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// BlobStore stores opaque binary content under generated ids. Fetch returns
// (nil, nil) when no blob exists under the id.
type BlobStore interface {
	Store(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Fetch(ctx context.Context, id string) (*Blob, error)
	Delete(ctx context.Context, id string) error
}
