package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/maestrokit/maestro/internal/config"
	"github.com/maestrokit/maestro/internal/events"
	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/logger"
)

var systemEventBus events.EventBus

// SetupRouter configures and returns the main router.
func SetupRouter(service *library.Service) *gin.Engine {
	r := gin.Default()

	if config.Get().Server.EnableCORS {
		r.Use(corsMiddleware())
	}

	if systemEventBus == nil {
		if _, err := InitializeEventBus(); err != nil {
			logger.Error("failed to initialize event bus", "error", err)
		}
	}

	setupRoutes(r, service, systemEventBus)

	return r
}

// corsMiddleware allows cross-origin requests from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// GetEventBus returns the global event bus instance.
func GetEventBus() events.EventBus {
	return systemEventBus
}

// ShutdownEventBus gracefully shuts down the event bus.
func ShutdownEventBus() error {
	if systemEventBus == nil {
		return nil
	}

	shutdownEvent := events.NewSystemEvent(
		events.EventSystemStopped,
		"System Stopped",
		"Maestro backend is shutting down",
	)
	systemEventBus.PublishAsync(shutdownEvent)

	return systemEventBus.Stop(context.Background())
}

// InitializeEventBus sets up the system-wide event bus. It is safe to call
// more than once; later calls return the running bus.
func InitializeEventBus() (events.EventBus, error) {
	if systemEventBus != nil {
		return systemEventBus, nil
	}

	systemEventBus = events.NewEventBus()
	if err := systemEventBus.Start(context.Background()); err != nil {
		systemEventBus = nil
		return nil, err
	}

	events.SetGlobalEventBus(systemEventBus)

	startupEvent := events.NewSystemEvent(
		events.EventSystemStarted,
		"System Started",
		"Maestro backend has started successfully",
	)
	if err := systemEventBus.PublishAsync(startupEvent); err != nil {
		logger.Warn("failed to publish startup event", "error", err)
	}

	return systemEventBus, nil
}
