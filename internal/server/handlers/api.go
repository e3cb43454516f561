package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/apiroutes"
)

// ApiRootHandler serves the /api endpoint, listing the registered routes.
func ApiRootHandler(c *gin.Context) {
	registered := apiroutes.All()

	endpoints := make(map[string]string)
	for _, route := range registered {
		segments := strings.Split(strings.TrimPrefix(route.Path, "/"), "/")
		if len(segments) == 0 || segments[0] == "" {
			continue
		}
		key := segments[0]
		if _, exists := endpoints[key]; !exists {
			endpoints[key] = "/" + key
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"endpoints":         endpoints,
		"status":            "OK",
		"registered_routes": registered,
	})
}
