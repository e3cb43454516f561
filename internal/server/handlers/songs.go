package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/config"
	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/server/respond"
)

// SongsHandler handles song endpoints nested under an artist's album.
type SongsHandler struct {
	service *library.Service
}

// NewSongsHandler creates a new songs handler.
func NewSongsHandler(service *library.Service) *SongsHandler {
	return &SongsHandler{service: service}
}

// List returns an album's songs in track order.
func (h *SongsHandler) List(c *gin.Context) {
	songs, err := h.service.ListSongs(c.Request.Context(), c.Param("artistId"), c.Param("albumId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, songs)
}

// Get returns a single song by id.
func (h *SongsHandler) Get(c *gin.Context) {
	song, err := h.service.GetSong(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, song)
}

// Create stores a song from a multipart upload. The audio file part "song" is
// required; the "artwork" part and the metadata fields are optional.
func (h *SongsHandler) Create(c *gin.Context) {
	in := library.NewSong{
		Name:        c.PostForm("songName"),
		TrackNumber: c.PostForm("trackNumber"),
		Year:        c.PostForm("year"),
	}

	file, err := c.FormFile("song")
	if err != nil {
		respond.SaveFailed(c)
		return
	}
	if in.FileName, in.FileData, in.FileContentType, err = readUpload(file); err != nil {
		respond.SaveFailed(c)
		return
	}

	if artwork, err := c.FormFile("artwork"); err == nil {
		if in.ArtworkName, in.ArtworkData, in.ArtworkContentType, err = readUpload(artwork); err != nil {
			respond.SaveFailed(c)
			return
		}
	}

	created, err := h.service.CreateSong(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), in)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, created)
}

// Update replaces a song's fields; an unknown song id creates the song.
// Omitted file references keep the stored blobs.
func (h *SongsHandler) Update(c *gin.Context) {
	var update library.SongUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.SaveFailed(c)
		return
	}

	updated, err := h.service.UpdateSong(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId"), update)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, updated)
}

// Delete removes a song from its album.
func (h *SongsHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSong(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId")); err != nil {
		respond.DeleteError(c, err)
		return
	}
	respond.Deleted(c)
}

var errUploadTooLarge = errors.New("upload exceeds the configured size limit")

// readUpload reads a multipart file part into memory, enforcing the
// configured upload size limit.
func readUpload(header *multipart.FileHeader) (name string, data []byte, contentType string, err error) {
	if max := config.Get().Storage.MaxFileSize; max > 0 && header.Size > max {
		return "", nil, "", errUploadTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return "", nil, "", err
	}
	return header.Filename, data, header.Header.Get("Content-Type"), nil
}
