package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/server/respond"
)

// AlbumsHandler handles album endpoints nested under an artist.
type AlbumsHandler struct {
	service *library.Service
}

// NewAlbumsHandler creates a new albums handler.
func NewAlbumsHandler(service *library.Service) *AlbumsHandler {
	return &AlbumsHandler{service: service}
}

// List returns an artist's albums, sorted by name.
func (h *AlbumsHandler) List(c *gin.Context) {
	albums, err := h.service.ListAlbums(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, albums)
}

// Get returns a single album by id.
func (h *AlbumsHandler) Get(c *gin.Context) {
	album, err := h.service.GetAlbum(c.Request.Context(), c.Param("artistId"), c.Param("albumId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, album)
}

// Create adds an album to an artist. The request body id, if any, is ignored.
func (h *AlbumsHandler) Create(c *gin.Context) {
	var album library.Album
	if err := c.ShouldBindJSON(&album); err != nil {
		respond.SaveFailed(c)
		return
	}

	created, err := h.service.CreateAlbum(c.Request.Context(), c.Param("artistId"), album)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, created)
}

// Update replaces an album's fields; an unknown album id creates the album.
func (h *AlbumsHandler) Update(c *gin.Context) {
	var album library.Album
	if err := c.ShouldBindJSON(&album); err != nil {
		respond.SaveFailed(c)
		return
	}

	updated, err := h.service.UpdateAlbum(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), album)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, updated)
}

// Delete removes an album and its songs from an artist.
func (h *AlbumsHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAlbum(c.Request.Context(), c.Param("artistId"), c.Param("albumId")); err != nil {
		respond.DeleteError(c, err)
		return
	}
	respond.Deleted(c)
}
