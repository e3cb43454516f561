package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maestrokit/maestro/internal/blobstore"
	"github.com/maestrokit/maestro/internal/config"
	"github.com/maestrokit/maestro/internal/database"
	"github.com/maestrokit/maestro/internal/docstore"
	"github.com/maestrokit/maestro/internal/library"
	"github.com/maestrokit/maestro/internal/logger"
	"github.com/maestrokit/maestro/internal/server"
)

func main() {
	if err := config.Load(os.Getenv("MAESTRO_CONFIG")); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.Get()

	logger.Configure(cfg.Logging.Level)

	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	bus, err := server.InitializeEventBus()
	if err != nil {
		log.Fatalf("Failed to start event bus: %v", err)
	}

	artists, err := buildArtistStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	service := library.NewService(artists, blobs, bus)
	router := server.SetupRouter(service)

	if stop, err := config.GetManager().WatchFile(); err != nil {
		logger.Warn("config file watching disabled", "error", err)
	} else {
		defer stop()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := server.ShutdownEventBus(); err != nil {
		logger.Error("event bus shutdown", "error", err)
	}
	if err := database.Shutdown(shutdownCtx); err != nil {
		logger.Error("database shutdown", "error", err)
	}
}

// buildArtistStore picks the document store backend from the configuration.
func buildArtistStore(cfg *config.Config) (library.ArtistStore, error) {
	switch cfg.Database.Type {
	case "mongo":
		return docstore.NewMongoStore(database.GetMongoDatabase()), nil
	case "sqlite", "postgres":
		return docstore.NewGormStore(database.GetDB())
	case "memory":
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Database.Type)
	}
}

// buildBlobStore picks the blob store backend from the configuration.
func buildBlobStore(cfg *config.Config) (library.BlobStore, error) {
	switch cfg.Storage.Type {
	case "gridfs":
		return blobstore.NewGridFSStore(database.GetMongoDatabase(), cfg.Storage.Bucket)
	case "filesystem":
		return blobstore.NewFileStore(cfg.Storage.BlobDir)
	case "memory":
		return blobstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}
