package library

import (
	"context"
	"fmt"

	"github.com/maestrokit/maestro/internal/events"
	"github.com/maestrokit/maestro/internal/logger"
	"github.com/maestrokit/maestro/internal/utils"
)

// Service exposes the library operations. Every mutation follows the same
// shape: resolve the target through the artist aggregate, apply the
// collection mutation, persist the whole aggregate, and clean up blobs of
// removed songs as a best-effort step.
type Service struct {
	artists  ArtistStore
	blobs    BlobStore
	resolver *Resolver
	bus      events.EventBus
}

// NewService creates a library service. The event bus may be nil.
func NewService(artists ArtistStore, blobs BlobStore, bus events.EventBus) *Service {
	return &Service{
		artists:  artists,
		blobs:    blobs,
		resolver: NewResolver(artists),
		bus:      bus,
	}
}

// Resolver returns the service's entity resolver.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

/*
 *  Artists
 */

// ListArtists returns all artists ordered by name descending. An empty
// library reports ErrNotFound.
func (s *Service) ListArtists(ctx context.Context) ([]Artist, error) {
	artists, err := s.artists.FindAll(ctx, NameDescending)
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	if len(artists) == 0 {
		return nil, ErrNotFound
	}
	return artists, nil
}

// GetArtist returns a single artist by id.
func (s *Service) GetArtist(ctx context.Context, artistID string) (*Artist, error) {
	artist, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("resolving artist: %w", err)
	}
	if artist == nil {
		return nil, ErrNotFound
	}
	return artist, nil
}

// CreateArtist stores a new artist under a generated id. Any id in the
// payload is discarded.
func (s *Service) CreateArtist(ctx context.Context, artist Artist) (*Artist, error) {
	artist.ID = utils.GenerateUUID()
	if err := s.artists.Save(ctx, &artist); err != nil {
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventArtistCreated, "Artist Created", artist.Name, artist.ID)
	return &artist, nil
}

// UpdateArtist replaces an artist's mutable fields under the given id,
// creating it when absent. A nil album list in the payload preserves the
// stored albums.
func (s *Service) UpdateArtist(ctx context.Context, artistID string, incoming Artist) (*Artist, error) {
	existing, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("resolving artist: %w", err)
	}
	if existing != nil && incoming.Albums == nil {
		incoming.Albums = existing.Albums
	}
	incoming.ID = artistID
	if err := s.artists.Save(ctx, &incoming); err != nil {
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventArtistUpdated, "Artist Updated", incoming.Name, artistID)
	return &incoming, nil
}

// DeleteArtist removes an artist and every album and song it contains,
// deleting the file and artwork blobs of each contained song.
func (s *Service) DeleteArtist(ctx context.Context, artistID string) error {
	artist, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return fmt.Errorf("resolving artist: %w", err)
	}
	if artist == nil {
		return ErrNotFound
	}
	for i := range artist.Albums {
		s.cleanupSongBlobs(ctx, artist.Albums[i].Songs)
	}
	if err := s.artists.DeleteByID(ctx, artistID); err != nil {
		return fmt.Errorf("deleting artist: %w", err)
	}
	s.publish(events.EventArtistDeleted, "Artist Deleted", artist.Name, artistID)
	return nil
}

/*
 *  Albums
 */

// ListAlbums returns an artist's albums ordered by name. An artist whose
// album list was never initialized reports ErrNotFound, the same as an
// unknown artist.
func (s *Service) ListAlbums(ctx context.Context, artistID string) ([]Album, error) {
	artist, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("resolving artist: %w", err)
	}
	if artist == nil || artist.Albums == nil {
		return nil, ErrNotFound
	}
	albums := make([]Album, len(artist.Albums))
	copy(albums, artist.Albums)
	SortAlbums(albums)
	return albums, nil
}

// GetAlbum returns a single album within an artist.
func (s *Service) GetAlbum(ctx context.Context, artistID, albumID string) (*Album, error) {
	_, album, err := s.resolver.Album(ctx, artistID, albumID)
	if err != nil {
		return nil, fmt.Errorf("resolving album: %w", err)
	}
	if album == nil {
		return nil, ErrNotFound
	}
	return album, nil
}

// CreateAlbum appends a new album to an artist under a generated id.
func (s *Service) CreateAlbum(ctx context.Context, artistID string, album Album) (*Album, error) {
	artist, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("resolving artist: %w", err)
	}
	if artist == nil {
		return nil, ErrParentMissing
	}
	created := insertAlbum(artist, album)
	if err := s.artists.Save(ctx, artist); err != nil {
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventAlbumCreated, "Album Created", created.Name, created.ID)
	return created, nil
}

// UpdateAlbum replaces an album within an artist, preserving the stored song
// list when the payload leaves it nil. A missing album id is upserted.
func (s *Service) UpdateAlbum(ctx context.Context, artistID, albumID string, incoming Album) (*Album, error) {
	artist, err := s.resolver.Artist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("resolving artist: %w", err)
	}
	if artist == nil {
		return nil, ErrParentMissing
	}
	updated := replaceAlbum(artist, albumID, incoming)
	if err := s.artists.Save(ctx, artist); err != nil {
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventAlbumUpdated, "Album Updated", updated.Name, updated.ID)
	return updated, nil
}

// DeleteAlbum removes an album and deletes the blobs of every song in it.
func (s *Service) DeleteAlbum(ctx context.Context, artistID, albumID string) error {
	artist, album, err := s.resolver.Album(ctx, artistID, albumID)
	if err != nil {
		return fmt.Errorf("resolving album: %w", err)
	}
	if album == nil {
		return ErrNotFound
	}
	s.cleanupSongBlobs(ctx, album.Songs)
	removed, _ := removeAlbum(artist, albumID)
	if err := s.artists.Save(ctx, artist); err != nil {
		return fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventAlbumDeleted, "Album Deleted", removed.Name, albumID)
	return nil
}

/*
 *  Songs
 */

// ListSongs returns an album's songs in numeric track order. A nil song list
// reports ErrNotFound, the same as an unknown album.
func (s *Service) ListSongs(ctx context.Context, artistID, albumID string) ([]Song, error) {
	_, album, err := s.resolver.Album(ctx, artistID, albumID)
	if err != nil {
		return nil, fmt.Errorf("resolving album: %w", err)
	}
	if album == nil || album.Songs == nil {
		return nil, ErrNotFound
	}
	songs := make([]Song, len(album.Songs))
	copy(songs, album.Songs)
	SortSongs(songs)
	return songs, nil
}

// GetSong returns a single song within an album.
func (s *Service) GetSong(ctx context.Context, artistID, albumID, songID string) (*Song, error) {
	_, _, song, err := s.resolver.Song(ctx, artistID, albumID, songID)
	if err != nil {
		return nil, fmt.Errorf("resolving song: %w", err)
	}
	if song == nil {
		return nil, ErrNotFound
	}
	return song, nil
}

// CreateSong stores the uploaded file and artwork blobs and appends a new
// song to the album. An empty name defaults to the uploaded filename without
// its extension; an empty track number defaults to "0" and must parse as an
// integer. The parent album is resolved before any blob is written so a
// rejected insert leaves no orphaned blobs.
func (s *Service) CreateSong(ctx context.Context, artistID, albumID string, in NewSong) (*Song, error) {
	artist, album, err := s.resolver.Album(ctx, artistID, albumID)
	if err != nil {
		return nil, fmt.Errorf("resolving album: %w", err)
	}
	if album == nil {
		return nil, ErrParentMissing
	}

	name := in.Name
	if name == "" {
		name = songNameFromFile(in.FileName)
	}
	trackNumber := in.TrackNumber
	if trackNumber == "" {
		trackNumber = "0"
	}
	if err := validateTrackNumber(trackNumber); err != nil {
		return nil, err
	}

	fileID, err := s.blobs.Store(ctx, in.FileData, in.FileName, in.FileContentType)
	if err != nil {
		return nil, fmt.Errorf("storing song file: %w", err)
	}
	var artworkFileID string
	if len(in.ArtworkData) > 0 {
		artworkFileID, err = s.blobs.Store(ctx, in.ArtworkData, in.ArtworkName, in.ArtworkContentType)
		if err != nil {
			s.deleteBlob(ctx, fileID)
			return nil, fmt.Errorf("storing artwork file: %w", err)
		}
	}

	created := insertSong(album, Song{
		Name:          name,
		TrackNumber:   trackNumber,
		Year:          in.Year,
		FileID:        fileID,
		ArtworkFileID: artworkFileID,
	})
	if err := s.artists.Save(ctx, artist); err != nil {
		// The aggregate never recorded the new blobs; drop them.
		s.deleteBlob(ctx, fileID)
		s.deleteBlob(ctx, artworkFileID)
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventSongCreated, "Song Created", created.Name, created.ID)
	return created, nil
}

// UpdateSong replaces a song within an album. Nil fileId and artworkFileId
// fields independently preserve the stored references; the track number must
// parse as an integer. A missing song id is upserted under the path id.
func (s *Service) UpdateSong(ctx context.Context, artistID, albumID, songID string, update SongUpdate) (*Song, error) {
	artist, album, err := s.resolver.Album(ctx, artistID, albumID)
	if err != nil {
		return nil, fmt.Errorf("resolving album: %w", err)
	}
	if album == nil {
		return nil, ErrParentMissing
	}
	if err := validateTrackNumber(update.TrackNumber); err != nil {
		return nil, err
	}
	updated := replaceSong(album, songID, update)
	if err := s.artists.Save(ctx, artist); err != nil {
		return nil, fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventSongUpdated, "Song Updated", updated.Name, updated.ID)
	return updated, nil
}

// DeleteSong removes a song from its album and deletes its file and artwork
// blobs.
func (s *Service) DeleteSong(ctx context.Context, artistID, albumID, songID string) error {
	artist, album, song, err := s.resolver.Song(ctx, artistID, albumID, songID)
	if err != nil {
		return fmt.Errorf("resolving song: %w", err)
	}
	if song == nil {
		return ErrNotFound
	}
	s.cleanupSongBlobs(ctx, []Song{*song})
	removed, _ := removeSong(album, songID)
	if err := s.artists.Save(ctx, artist); err != nil {
		return fmt.Errorf("saving artist: %w", err)
	}
	s.publish(events.EventSongDeleted, "Song Deleted", removed.Name, songID)
	return nil
}

/*
 *  Files
 */

// GetSongFile returns the audio blob of a song.
func (s *Service) GetSongFile(ctx context.Context, artistID, albumID, songID string) (*Blob, error) {
	song, err := s.GetSong(ctx, artistID, albumID, songID)
	if err != nil {
		return nil, err
	}
	return s.fetchBlob(ctx, song.FileID)
}

// GetSongArtwork returns the artwork blob of a song. A song without artwork
// reports ErrNotFound.
func (s *Service) GetSongArtwork(ctx context.Context, artistID, albumID, songID string) (*Blob, error) {
	song, err := s.GetSong(ctx, artistID, albumID, songID)
	if err != nil {
		return nil, err
	}
	if song.ArtworkFileID == "" {
		return nil, ErrNotFound
	}
	return s.fetchBlob(ctx, song.ArtworkFileID)
}

func (s *Service) fetchBlob(ctx context.Context, blobID string) (*Blob, error) {
	if blobID == "" {
		return nil, ErrNotFound
	}
	blob, err := s.blobs.Fetch(ctx, blobID)
	if err != nil {
		return nil, fmt.Errorf("fetching blob: %w", err)
	}
	if blob == nil {
		return nil, ErrNotFound
	}
	return blob, nil
}

// cleanupSongBlobs deletes the file and artwork blobs of removed songs. The
// step is best-effort: the aggregate write does not roll back when a blob
// deletion fails, so failures are logged and published instead of returned.
func (s *Service) cleanupSongBlobs(ctx context.Context, songs []Song) {
	for i := range songs {
		s.deleteBlob(ctx, songs[i].FileID)
		s.deleteBlob(ctx, songs[i].ArtworkFileID)
	}
}

func (s *Service) deleteBlob(ctx context.Context, blobID string) {
	if blobID == "" {
		return
	}
	if err := s.blobs.Delete(ctx, blobID); err != nil {
		logger.Warn("blob cleanup failed", "blob_id", blobID, "error", err)
		if s.bus != nil {
			event := events.NewSystemEvent(events.EventBlobCleanupFailed,
				"Blob Cleanup Failed", err.Error())
			event.Data = map[string]interface{}{"blob_id": blobID}
			s.bus.PublishAsync(event)
		}
	}
}

func (s *Service) publish(eventType events.EventType, title, name, id string) {
	if s.bus == nil {
		return
	}
	event := events.NewSystemEvent(eventType, title, name)
	event.Data = map[string]interface{}{"id": id}
	s.bus.PublishAsync(event)
}
