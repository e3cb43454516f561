// Package library implements the music library core: the artist aggregate
// model, containment resolution, collection mutation rules, and the service
// that commits aggregates against the document and blob stores.
package library

import (
	"sort"
	"strconv"
)

// Artist is the root aggregate and the sole unit of persistence. Albums may
// be nil, which is a distinct observable state from an empty list and must
// survive a save/load round trip.
type Artist struct {
	ID     string  `json:"id" bson:"_id"`
	Name   string  `json:"name" bson:"name"`
	Albums []Album `json:"albums" bson:"albums"`
}

// Album exists only as an element of exactly one artist's album list.
type Album struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Songs []Song `json:"songs" bson:"songs"`
}

// Song exists only as an element of exactly one album's song list. TrackNumber
// is a string-encoded integer; FileID and ArtworkFileID reference blobs.
type Song struct {
	ID            string `json:"id" bson:"id"`
	Name          string `json:"name" bson:"name"`
	TrackNumber   string `json:"trackNumber" bson:"trackNumber"`
	Year          string `json:"year,omitempty" bson:"year,omitempty"`
	FileID        string `json:"fileId" bson:"fileId"`
	ArtworkFileID string `json:"artworkFileId,omitempty" bson:"artworkFileId,omitempty"`
}

// SortAlbums orders albums by name ascending. Display order is computed at
// read time and never stored.
func SortAlbums(albums []Album) {
	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].Name < albums[j].Name
	})
}

// SortSongs orders songs by numeric track number ("2" sorts before "10").
func SortSongs(songs []Song) {
	sort.SliceStable(songs, func(i, j int) bool {
		return trackValue(songs[i].TrackNumber) < trackValue(songs[j].TrackNumber)
	})
}

// trackValue parses a track number for ordering. Writes validate track
// numbers eagerly, so an unparseable value can only come from pre-existing
// data; it sorts as zero rather than failing the read.
func trackValue(trackNumber string) int {
	n, err := strconv.Atoi(trackNumber)
	if err != nil {
		return 0
	}
	return n
}
