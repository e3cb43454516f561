// Package database opens the configured persistence backend and exposes its
// handles to the rest of the application.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/maestrokit/maestro/internal/config"
	"github.com/maestrokit/maestro/internal/logger"
)

var (
	gormDB      *gorm.DB
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// Initialize connects to the backend selected by the configuration. The
// "memory" type needs no connection and is a no-op here.
func Initialize(cfg *config.Config) error {
	var err error

	switch cfg.Database.Type {
	case "sqlite":
		gormDB, err = connectSQLite(cfg)
	case "postgres":
		gormDB, err = connectPostgres(cfg)
	case "mongo":
		err = connectMongo(cfg)
	case "memory":
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.Database.Type, err)
	}

	logger.Info("database initialized", "type", cfg.Database.Type)
	return nil
}

func connectSQLite(cfg *config.Config) (*gorm.DB, error) {
	path := cfg.Database.DatabasePath
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return gorm.Open(sqlite.Open(path), gormConfig(cfg))
}

func connectPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		cfg.Database.Host, cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Database, cfg.Database.Port)
	return gorm.Open(postgres.Open(dsn), gormConfig(cfg))
}

func connectMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	mongoClient = client
	mongoDB = client.Database(cfg.Database.MongoDB)
	return nil
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := gormlogger.Silent
	if cfg.Database.LogQueries {
		level = gormlogger.Info
	}
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	}
}

// GetDB returns the GORM handle (nil unless the backend is sqlite/postgres).
func GetDB() *gorm.DB {
	return gormDB
}

// GetMongoDatabase returns the mongo handle (nil unless the backend is mongo).
func GetMongoDatabase() *mongo.Database {
	return mongoDB
}

// Ping verifies the backend connection is alive.
func Ping(ctx context.Context) error {
	switch {
	case gormDB != nil:
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	case mongoClient != nil:
		return mongoClient.Ping(ctx, readpref.Primary())
	default:
		return nil
	}
}

// Shutdown closes the backend connection.
func Shutdown(ctx context.Context) error {
	switch {
	case gormDB != nil:
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	case mongoClient != nil:
		return mongoClient.Disconnect(ctx)
	default:
		return nil
	}
}
