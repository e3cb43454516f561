package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maestrokit/maestro/internal/library"
)

// GridFSStore keeps blobs in a MongoDB GridFS bucket, with the content type
// carried in the file document's metadata. Blob ids are the hex form of the
// GridFS file ids.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore opens (or creates) the named bucket on the database.
func NewGridFSStore(db *mongo.Database, bucketName string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("opening gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Store uploads the blob and returns the generated file id.
func (s *GridFSStore) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{
		{Key: "contentType", Value: contentType},
	})
	id, err := s.bucket.UploadFromStream(filename, bytes.NewReader(data), opts)
	if err != nil {
		return "", fmt.Errorf("uploading blob: %w", err)
	}
	return id.Hex(), nil
}

// Fetch downloads a blob. Returns (nil, nil) when the id is unknown or not a
// valid file id.
func (s *GridFSStore) Fetch(ctx context.Context, id string) (*library.Blob, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	stream, err := s.bucket.OpenDownloadStream(fileID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", id, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", id, err)
	}

	file := stream.GetFile()
	blob := &library.Blob{
		Data:     data,
		Filename: file.Name,
		Size:     file.Length,
	}
	if len(file.Metadata) > 0 {
		if value, ok := bson.Raw(file.Metadata).Lookup("contentType").StringValueOK(); ok {
			blob.ContentType = value
		}
	}
	return blob, nil
}

// Delete removes a blob. Deleting an unknown id is not an error.
func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	err = s.bucket.Delete(fileID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting blob %s: %w", id, err)
	}
	return nil
}
