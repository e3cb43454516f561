// Package handlers contains HTTP request handlers organized by resource.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/server/respond"
)

// ArtistsHandler handles the top-level artist endpoints.
type ArtistsHandler struct {
	service *library.Service
}

// NewArtistsHandler creates a new artists handler.
func NewArtistsHandler(service *library.Service) *ArtistsHandler {
	return &ArtistsHandler{service: service}
}

// List returns every artist in the library, sorted by name.
func (h *ArtistsHandler) List(c *gin.Context) {
	artists, err := h.service.ListArtists(c.Request.Context())
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, artists)
}

// Get returns a single artist by id.
func (h *ArtistsHandler) Get(c *gin.Context) {
	artist, err := h.service.GetArtist(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	respond.Found(c, artist)
}

// Create stores a new artist. The request body id, if any, is ignored.
func (h *ArtistsHandler) Create(c *gin.Context) {
	var artist library.Artist
	if err := c.ShouldBindJSON(&artist); err != nil {
		respond.SaveFailed(c)
		return
	}

	created, err := h.service.CreateArtist(c.Request.Context(), artist)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, created)
}

// Update replaces an artist's fields; an unknown id creates the artist.
func (h *ArtistsHandler) Update(c *gin.Context) {
	var artist library.Artist
	if err := c.ShouldBindJSON(&artist); err != nil {
		respond.SaveFailed(c)
		return
	}

	updated, err := h.service.UpdateArtist(c.Request.Context(), c.Param("artistId"), artist)
	if err != nil {
		respond.SaveError(c, err)
		return
	}
	respond.Saved(c, updated)
}

// Delete removes an artist and all of its albums and songs.
func (h *ArtistsHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteArtist(c.Request.Context(), c.Param("artistId")); err != nil {
		respond.DeleteError(c, err)
		return
	}
	respond.Deleted(c)
}
