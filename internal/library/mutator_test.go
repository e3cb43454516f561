package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongNameFromFile(t *testing.T) {
	assert.Equal(t, "Sunburn", songNameFromFile("Sunburn.mp3"))
	assert.Equal(t, "archive.tar", songNameFromFile("archive.tar.gz"))
	assert.Equal(t, "noextension", songNameFromFile("noextension"))
	assert.Equal(t, "", songNameFromFile(".hidden"))
}

func TestValidateTrackNumber(t *testing.T) {
	assert.NoError(t, validateTrackNumber("0"))
	assert.NoError(t, validateTrackNumber("12"))
	assert.NoError(t, validateTrackNumber("-1"))
	assert.ErrorIs(t, validateTrackNumber(""), ErrInvalidTrackNumber)
	assert.ErrorIs(t, validateTrackNumber("one"), ErrInvalidTrackNumber)
	assert.ErrorIs(t, validateTrackNumber("1.5"), ErrInvalidTrackNumber)
}

func TestReplaceAlbumMovesEntryToEnd(t *testing.T) {
	artist := &Artist{
		Albums: []Album{
			{ID: "a", Name: "First"},
			{ID: "b", Name: "Second"},
		},
	}

	updated := replaceAlbum(artist, "a", Album{Name: "First (Remastered)"})
	require.Len(t, artist.Albums, 2)
	assert.Equal(t, "a", updated.ID)
	// The replaced entry is spliced out and re-appended.
	assert.Equal(t, "b", artist.Albums[0].ID)
	assert.Equal(t, "a", artist.Albums[1].ID)
}

func TestReplaceAlbumLazyInitializesList(t *testing.T) {
	artist := &Artist{}

	updated := replaceAlbum(artist, "fresh", Album{Name: "Showbiz"})
	assert.Equal(t, "fresh", updated.ID)
	require.NotNil(t, artist.Albums)
	assert.Len(t, artist.Albums, 1)
}

func TestSortSongsNumericNotLexicographic(t *testing.T) {
	songs := []Song{
		{Name: "Tenth", TrackNumber: "10"},
		{Name: "Second", TrackNumber: "2"},
	}
	SortSongs(songs)
	assert.Equal(t, "Second", songs[0].Name)
	assert.Equal(t, "Tenth", songs[1].Name)
}
