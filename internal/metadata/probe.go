// Package metadata reads embedded tags from stored song audio.
package metadata

import (
	"bytes"
	"fmt"

	"github.com/dhowden/tag"
)

// FileInfo is the tag metadata embedded in an audio file.
type FileInfo struct {
	Format      string `json:"format"`
	FileType    string `json:"file_type"`
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	AlbumArtist string `json:"album_artist,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Year        int    `json:"year,omitempty"`
	Track       int    `json:"track,omitempty"`
	TrackTotal  int    `json:"track_total,omitempty"`
}

// Probe extracts embedded tag metadata from audio bytes. Files without a
// recognizable tag format report an error.
func Probe(data []byte) (*FileInfo, error) {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	track, trackTotal := m.Track()
	return &FileInfo{
		Format:      string(m.Format()),
		FileType:    string(m.FileType()),
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		AlbumArtist: m.AlbumArtist(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		Track:       track,
		TrackTotal:  trackTotal,
	}, nil
}
