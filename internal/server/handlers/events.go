package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/events"
)

// EventsHandler handles system event endpoints.
type EventsHandler struct {
	eventBus events.EventBus
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(eventBus events.EventBus) *EventsHandler {
	return &EventsHandler{eventBus: eventBus}
}

// GetRecentEvents returns the most recent system events, newest first.
func (h *EventsHandler) GetRecentEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	recent := h.eventBus.Recent(limit)
	c.JSON(http.StatusOK, gin.H{
		"events": recent,
		"count":  len(recent),
	})
}
