package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Store(context.Background(), []byte("audio-bytes"), "song.mp3", "audio/mpeg")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	blob, err := store.Fetch(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, []byte("audio-bytes"), blob.Data)
	assert.Equal(t, "song.mp3", blob.Filename)
	assert.Equal(t, "audio/mpeg", blob.ContentType)
	assert.Equal(t, int64(len("audio-bytes")), blob.Size)
}

func TestFileStoreFetchUnknown(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	blob, err := store.Fetch(context.Background(), "0123456789abcdef")
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Store(context.Background(), []byte("audio-bytes"), "song.mp3", "audio/mpeg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), id))

	blob, err := store.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, blob)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(context.Background(), id))
}

func TestMemoryStoreRecordsDeletions(t *testing.T) {
	store := NewMemoryStore()

	id, err := store.Store(context.Background(), []byte("audio-bytes"), "song.mp3", "audio/mpeg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), id))
	assert.Equal(t, []string{id}, store.Deleted())
	assert.Equal(t, 0, store.Len())
}
