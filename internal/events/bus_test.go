package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishBeforeStart(t *testing.T) {
	bus := NewEventBus()

	err := bus.PublishAsync(NewSystemEvent(EventSystemStarted, "Started", ""))
	assert.Error(t, err)
}

func TestPublishAndRecent(t *testing.T) {
	bus := NewEventBus()
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))

	require.NoError(t, bus.PublishAsync(NewSystemEvent(EventArtistCreated, "First", "")))
	require.NoError(t, bus.PublishAsync(NewSystemEvent(EventArtistUpdated, "Second", "")))

	// Stop drains the queue into the history.
	require.NoError(t, bus.Stop(ctx))

	recent := bus.Recent(10)
	require.Len(t, recent, 2)
	// Newest first.
	assert.Equal(t, "Second", recent[0].Title)
	assert.Equal(t, "First", recent[1].Title)
}

func TestRecentLimit(t *testing.T) {
	bus := NewEventBus()
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.PublishAsync(NewSystemEvent(EventSongCreated, "Song", "")))
	}
	require.NoError(t, bus.Stop(ctx))

	assert.Len(t, bus.Recent(3), 3)
	assert.Len(t, bus.Recent(0), 5)
}

func TestStopIsIdempotent(t *testing.T) {
	bus := NewEventBus()
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
	assert.NoError(t, bus.Stop(ctx))
}

func TestNewSystemEventFields(t *testing.T) {
	event := NewSystemEvent(EventAlbumCreated, "Album Created", "Showbiz")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventAlbumCreated, event.Type)
	assert.Equal(t, "Album Created", event.Title)
	assert.Equal(t, "Showbiz", event.Message)
	assert.False(t, event.Timestamp.IsZero())
}
