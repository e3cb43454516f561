// Package blobstore provides the blob store implementations that hold song
// audio and artwork files as opaque byte content: GridFS, a filesystem store,
// and an in-memory store for tests.
package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/utils"
)

// blobMeta is the sidecar record written next to each blob file.
type blobMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	SHA256      string `json:"sha256"`
}

// FileStore keeps blobs on the local filesystem under generated ids, fanned
// out by id prefix to keep directories small. Writes go through a temporary
// file and a rename so a crash never leaves a partial blob.
type FileStore struct {
	root string
	mu   sync.RWMutex
}

// NewFileStore creates the root directory and returns the store.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating blob root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Store writes the blob and its metadata sidecar, returning the generated id.
func (fs *FileStore) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	id := utils.GenerateUUID()
	dataPath := fs.dataPath(id)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}

	if err := writeAtomic(dataPath, data); err != nil {
		return "", err
	}

	meta := blobMeta{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      fmt.Sprintf("%x", sha256.Sum256(data)),
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encoding blob metadata: %w", err)
	}
	if err := writeAtomic(fs.metaPath(id), encoded); err != nil {
		os.Remove(dataPath)
		return "", err
	}

	return id, nil
}

// Fetch reads a blob and its metadata. Returns (nil, nil) when the id is
// unknown.
func (fs *FileStore) Fetch(ctx context.Context, id string) (*library.Blob, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.dataPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", id, err)
	}

	var meta blobMeta
	encoded, err := os.ReadFile(fs.metaPath(id))
	if err == nil {
		if err := json.Unmarshal(encoded, &meta); err != nil {
			return nil, fmt.Errorf("decoding blob metadata %s: %w", id, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading blob metadata %s: %w", id, err)
	}

	return &library.Blob{
		Data:        data,
		Filename:    meta.Filename,
		ContentType: meta.ContentType,
		Size:        int64(len(data)),
	}, nil
}

// Delete removes a blob and its sidecar. Deleting an unknown id is not an
// error; cleanup is best-effort and may run twice.
func (fs *FileStore) Delete(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.dataPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob %s: %w", id, err)
	}
	if err := os.Remove(fs.metaPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob metadata %s: %w", id, err)
	}
	// Drop the fan-out directory once it empties; best-effort.
	os.Remove(filepath.Dir(fs.dataPath(id)))
	return nil
}

func (fs *FileStore) dataPath(id string) string {
	return filepath.Join(fs.root, subfolder(id), id)
}

func (fs *FileStore) metaPath(id string) string {
	return fs.dataPath(id) + ".json"
}

// subfolder returns the fan-out directory for an id.
func subfolder(id string) string {
	if len(id) < 2 {
		return "00"
	}
	return id[:2]
}

// writeAtomic writes data through a temporary file and a rename.
func writeAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	_, writeErr := tempFile.Write(data)
	closeErr := tempFile.Close()

	if writeErr != nil {
		os.Remove(tempPath)
		return fmt.Errorf("writing data: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing temporary file: %w", closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("moving file into place: %w", err)
	}
	return nil
}
