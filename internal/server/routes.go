package server

import (
	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/apiroutes"
	"github.com/maestrokit/maestro/internal/events"
	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/server/handlers"
)

// setupRoutes configures all API routes.
func setupRoutes(r *gin.Engine, service *library.Service, bus events.EventBus) {
	artists := handlers.NewArtistsHandler(service)
	albums := handlers.NewAlbumsHandler(service)
	songs := handlers.NewSongsHandler(service)
	files := handlers.NewFilesHandler(service)
	eventsHandler := handlers.NewEventsHandler(bus)

	r.GET("/api", handlers.ApiRootHandler)
	apiroutes.Register("/api", "GET", "API index")

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HandleHealthCheck)
		apiroutes.Register("/api/health", "GET", "Service health check")

		api.GET("/health/db", handlers.HandleDBStatus)
		apiroutes.Register("/api/health/db", "GET", "Database connection status")

		api.GET("/system/status", handlers.HandleSystemStatus)
		apiroutes.Register("/api/system/status", "GET", "Host resource usage")

		api.GET("/events/recent", eventsHandler.GetRecentEvents)
		apiroutes.Register("/api/events/recent", "GET", "Recent system events")
	}

	artistRoutes := r.Group("/artists")
	{
		artistRoutes.GET("", artists.List)
		artistRoutes.POST("", artists.Create)
		artistRoutes.GET("/:artistId", artists.Get)
		artistRoutes.PUT("/:artistId", artists.Update)
		artistRoutes.DELETE("/:artistId", artists.Delete)

		albumRoutes := artistRoutes.Group("/:artistId/albums")
		{
			albumRoutes.GET("", albums.List)
			albumRoutes.POST("", albums.Create)
			albumRoutes.GET("/:albumId", albums.Get)
			albumRoutes.PUT("/:albumId", albums.Update)
			albumRoutes.DELETE("/:albumId", albums.Delete)

			songRoutes := albumRoutes.Group("/:albumId/songs")
			{
				songRoutes.GET("", songs.List)
				songRoutes.POST("", songs.Create)
				songRoutes.GET("/:songId", songs.Get)
				songRoutes.PUT("/:songId", songs.Update)
				songRoutes.DELETE("/:songId", songs.Delete)

				songRoutes.GET("/:songId/file", files.GetFile)
				songRoutes.GET("/:songId/file/info", files.GetFileInfo)
				songRoutes.GET("/:songId/artwork", files.GetArtwork)
			}
		}
	}

	apiroutes.Register("/artists", "GET", "List all artists")
	apiroutes.Register("/artists", "POST", "Create an artist")
	apiroutes.Register("/artists/:artistId", "GET", "Get an artist")
	apiroutes.Register("/artists/:artistId", "PUT", "Update an artist")
	apiroutes.Register("/artists/:artistId", "DELETE", "Delete an artist")
	apiroutes.Register("/artists/:artistId/albums", "GET", "List an artist's albums")
	apiroutes.Register("/artists/:artistId/albums", "POST", "Create an album")
	apiroutes.Register("/artists/:artistId/albums/:albumId", "GET", "Get an album")
	apiroutes.Register("/artists/:artistId/albums/:albumId", "PUT", "Update an album")
	apiroutes.Register("/artists/:artistId/albums/:albumId", "DELETE", "Delete an album")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs", "GET", "List an album's songs")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs", "POST", "Upload a song")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId", "GET", "Get a song")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId", "PUT", "Update a song")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId", "DELETE", "Delete a song")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId/file", "GET", "Download a song's audio file")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId/file/info", "GET", "Read a song file's embedded tags")
	apiroutes.Register("/artists/:artistId/albums/:albumId/songs/:songId/artwork", "GET", "Download a song's artwork")
}
