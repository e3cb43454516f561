package library

import (
	"context"
)

// Resolver locates artists, albums, and songs by following ownership
// containment. Each lookup is a pure function of current store state and
// returns live references into the fetched aggregate; callers re-fetch to
// observe concurrent changes.
type Resolver struct {
	artists ArtistStore
}

// NewResolver creates a resolver over the given artist store.
func NewResolver(artists ArtistStore) *Resolver {
	return &Resolver{artists: artists}
}

// Artist fetches an artist by id. Returns (nil, nil) when absent.
func (r *Resolver) Artist(ctx context.Context, artistID string) (*Artist, error) {
	return r.artists.FindByID(ctx, artistID)
}

// Album locates an album within an artist. A nil album list resolves the
// same as an empty one: no match. The owning artist is returned alongside
// the album so callers can persist the whole aggregate after mutating it.
func (r *Resolver) Album(ctx context.Context, artistID, albumID string) (*Artist, *Album, error) {
	artist, err := r.Artist(ctx, artistID)
	if err != nil {
		return nil, nil, err
	}
	if artist == nil {
		return nil, nil, nil
	}
	return artist, findAlbum(artist, albumID), nil
}

// Song locates a song within an album within an artist, returning the full
// ownership chain.
func (r *Resolver) Song(ctx context.Context, artistID, albumID, songID string) (*Artist, *Album, *Song, error) {
	artist, album, err := r.Album(ctx, artistID, albumID)
	if err != nil {
		return nil, nil, nil, err
	}
	if album == nil {
		return artist, nil, nil, nil
	}
	return artist, album, findSong(album, songID), nil
}

func findAlbum(artist *Artist, albumID string) *Album {
	for i := range artist.Albums {
		if artist.Albums[i].ID == albumID {
			return &artist.Albums[i]
		}
	}
	return nil
}

func findSong(album *Album, songID string) *Song {
	for i := range album.Songs {
		if album.Songs[i].ID == songID {
			return &album.Songs[i]
		}
	}
	return nil
}
