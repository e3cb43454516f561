package library

import (
	"strconv"
	"strings"

	"github.com/maestrokit/maestro/internal/utils"
)

// SongUpdate is the payload of a song replace. FileID and ArtworkFileID are
// pointers because an absent (or null) field preserves the stored reference,
// independently of each other. Name, TrackNumber, and Year always take the
// incoming value.
type SongUpdate struct {
	Name          string  `json:"name"`
	TrackNumber   string  `json:"trackNumber"`
	Year          string  `json:"year"`
	FileID        *string `json:"fileId"`
	ArtworkFileID *string `json:"artworkFileId"`
}

// NewSong carries the parts of a multipart song upload.
type NewSong struct {
	Name        string
	TrackNumber string
	Year        string

	FileName        string
	FileData        []byte
	FileContentType string

	ArtworkName        string
	ArtworkData        []byte
	ArtworkContentType string
}

// insertAlbum appends a new album with a generated id, lazily initializing a
// nil album list. Any id in the incoming album is discarded.
func insertAlbum(artist *Artist, album Album) *Album {
	if artist.Albums == nil {
		artist.Albums = []Album{}
	}
	album.ID = utils.GenerateUUID()
	artist.Albums = append(artist.Albums, album)
	return &artist.Albums[len(artist.Albums)-1]
}

// replaceAlbum applies the album replace rule: an existing album's songs are
// carried over when the incoming payload leaves them nil, the old entry is
// spliced out, and the merged album is appended under the original id. When
// no album matches, the incoming payload is inserted under albumID as an
// upsert.
func replaceAlbum(artist *Artist, albumID string, incoming Album) *Album {
	if existing := findAlbum(artist, albumID); existing != nil {
		if incoming.Songs == nil {
			incoming.Songs = existing.Songs
		}
		removeAlbum(artist, albumID)
	}
	incoming.ID = albumID
	if artist.Albums == nil {
		artist.Albums = []Album{}
	}
	artist.Albums = append(artist.Albums, incoming)
	return &artist.Albums[len(artist.Albums)-1]
}

// removeAlbum splices an album out of the list, preserving the order of the
// remaining entries.
func removeAlbum(artist *Artist, albumID string) (Album, bool) {
	for i := range artist.Albums {
		if artist.Albums[i].ID == albumID {
			removed := artist.Albums[i]
			artist.Albums = append(artist.Albums[:i], artist.Albums[i+1:]...)
			return removed, true
		}
	}
	return Album{}, false
}

// insertSong appends a new song with a generated id, lazily initializing a
// nil song list.
func insertSong(album *Album, song Song) *Song {
	if album.Songs == nil {
		album.Songs = []Song{}
	}
	song.ID = utils.GenerateUUID()
	album.Songs = append(album.Songs, song)
	return &album.Songs[len(album.Songs)-1]
}

// replaceSong applies the song replace rule: a nil FileID preserves the
// stored file reference and a nil ArtworkFileID independently preserves the
// stored artwork reference. Missing songs are upserted under songID.
func replaceSong(album *Album, songID string, update SongUpdate) *Song {
	merged := Song{
		ID:          songID,
		Name:        update.Name,
		TrackNumber: update.TrackNumber,
		Year:        update.Year,
	}
	if update.FileID != nil {
		merged.FileID = *update.FileID
	}
	if update.ArtworkFileID != nil {
		merged.ArtworkFileID = *update.ArtworkFileID
	}

	if existing := findSong(album, songID); existing != nil {
		if update.FileID == nil {
			merged.FileID = existing.FileID
		}
		if update.ArtworkFileID == nil {
			merged.ArtworkFileID = existing.ArtworkFileID
		}
		removeSong(album, songID)
	}

	if album.Songs == nil {
		album.Songs = []Song{}
	}
	album.Songs = append(album.Songs, merged)
	return &album.Songs[len(album.Songs)-1]
}

// removeSong splices a song out of the list, preserving the order of the
// remaining entries.
func removeSong(album *Album, songID string) (Song, bool) {
	for i := range album.Songs {
		if album.Songs[i].ID == songID {
			removed := album.Songs[i]
			album.Songs = append(album.Songs[:i], album.Songs[i+1:]...)
			return removed, true
		}
	}
	return Song{}, false
}

// songNameFromFile derives a song name from an uploaded filename: everything
// before the last dot, or the whole name when there is none.
func songNameFromFile(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[:idx]
	}
	return filename
}

// validateTrackNumber rejects track numbers that do not parse as integers.
func validateTrackNumber(trackNumber string) error {
	if _, err := strconv.Atoi(trackNumber); err != nil {
		return ErrInvalidTrackNumber
	}
	return nil
}
