// Package events provides a small asynchronous event bus for library
// lifecycle notifications.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of event
type EventType string

const (
	EventSystemStarted EventType = "system.started"
	EventSystemStopped EventType = "system.stopped"

	EventArtistCreated EventType = "library.artist.created"
	EventArtistUpdated EventType = "library.artist.updated"
	EventArtistDeleted EventType = "library.artist.deleted"
	EventAlbumCreated  EventType = "library.album.created"
	EventAlbumUpdated  EventType = "library.album.updated"
	EventAlbumDeleted  EventType = "library.album.deleted"
	EventSongCreated   EventType = "library.song.created"
	EventSongUpdated   EventType = "library.song.updated"
	EventSongDeleted   EventType = "library.song.deleted"

	EventBlobCleanupFailed EventType = "storage.blob.cleanup.failed"
)

// Event represents a single event published on the bus
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewSystemEvent creates an event with a generated id and current timestamp
func NewSystemEvent(eventType EventType, title, message string) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
}
