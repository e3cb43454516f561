// Package respond shapes service outcomes into the API's response envelope.
// Handlers never pick status codes themselves; they hand the outcome (or
// error) to this package.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/library"
)

// Body is the JSON envelope of every non-binary response.
type Body struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	findSuccess   = "Objects found."
	findFailure   = "Could not find any objects."
	saveSuccess   = "Object saved successfully."
	saveFailure   = "Could not successfully save the object."
	deleteSuccess = "Object deleted successfully."
	deleteFailure = "Could not successfully delete the object."
)

// Found writes a 200 with the found payload.
func Found(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Message: findSuccess, Data: data})
}

// NotFound writes a 404.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Body{Message: findFailure})
}

// Saved writes a 201 with the saved payload.
func Saved(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Message: saveSuccess, Data: data})
}

// SaveFailed writes a 422.
func SaveFailed(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, Body{Message: saveFailure})
}

// Deleted writes a 200 with no payload.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, Body{Message: deleteSuccess})
}

// DeleteFailed writes a 422.
func DeleteFailed(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, Body{Message: deleteFailure})
}

// Internal writes a 500 carrying the error message.
func Internal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Body{Message: err.Error()})
}

// FindError maps a read-path error: missing targets are 404, everything else
// is an internal failure.
func FindError(c *gin.Context, err error) {
	if errors.Is(err, library.ErrNotFound) {
		NotFound(c)
		return
	}
	Internal(c, err)
}

// SaveError maps a write-path error: missing parents, missing targets, and
// rejected input are unprocessable, everything else is an internal failure.
func SaveError(c *gin.Context, err error) {
	if errors.Is(err, library.ErrParentMissing) ||
		errors.Is(err, library.ErrNotFound) ||
		errors.Is(err, library.ErrInvalidTrackNumber) {
		SaveFailed(c)
		return
	}
	Internal(c, err)
}

// DeleteError maps a delete-path error: a missing target is an unprocessable
// delete, everything else is an internal failure.
func DeleteError(c *gin.Context, err error) {
	if errors.Is(err, library.ErrNotFound) || errors.Is(err, library.ErrParentMissing) {
		DeleteFailed(c)
		return
	}
	Internal(c, err)
}
