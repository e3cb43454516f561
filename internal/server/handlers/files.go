package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/metadata"
	"github.com/maestrokit/maestro/internal/server/respond"
)

// FilesHandler serves the binary content attached to songs.
type FilesHandler struct {
	service *library.Service
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(service *library.Service) *FilesHandler {
	return &FilesHandler{service: service}
}

// GetFile streams a song's audio file.
func (h *FilesHandler) GetFile(c *gin.Context) {
	blob, err := h.service.GetSongFile(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	writeBlob(c, blob)
}

// GetArtwork streams a song's artwork image.
func (h *FilesHandler) GetArtwork(c *gin.Context) {
	blob, err := h.service.GetSongArtwork(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}
	writeBlob(c, blob)
}

// GetFileInfo returns the tags embedded in a song's audio file.
func (h *FilesHandler) GetFileInfo(c *gin.Context) {
	blob, err := h.service.GetSongFile(c.Request.Context(), c.Param("artistId"), c.Param("albumId"), c.Param("songId"))
	if err != nil {
		respond.FindError(c, err)
		return
	}

	info, err := metadata.Probe(blob.Data)
	if err != nil {
		respond.NotFound(c)
		return
	}
	respond.Found(c, info)
}

func writeBlob(c *gin.Context, blob *library.Blob) {
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if blob.Filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", blob.Filename))
	}
	c.Data(http.StatusOK, contentType, blob.Data)
}
