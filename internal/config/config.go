// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `yaml:"host" env:"MAESTRO_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"MAESTRO_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"MAESTRO_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"MAESTRO_WRITE_TIMEOUT" default:"30s"`
	EnableCORS   bool          `yaml:"enable_cors" env:"MAESTRO_ENABLE_CORS" default:"true"`
}

// DatabaseConfig selects and configures the document store backend.
// Type is one of "mongo", "sqlite", "postgres" or "memory".
type DatabaseConfig struct {
	Type         string `yaml:"type" env:"DATABASE_TYPE" default:"sqlite"`
	MongoURI     string `yaml:"mongo_uri" env:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB      string `yaml:"mongo_db" env:"MONGO_DB" default:"maestro"`
	Host         string `yaml:"host" env:"POSTGRES_HOST" default:"localhost"`
	Port         int    `yaml:"port" env:"POSTGRES_PORT" default:"5432"`
	Username     string `yaml:"username" env:"POSTGRES_USER" default:"maestro"`
	Password     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database     string `yaml:"database" env:"POSTGRES_DB" default:"maestro"`
	DataDir      string `yaml:"data_dir" env:"MAESTRO_DATA_DIR" default:"./data"`
	DatabasePath string `yaml:"database_path" env:"MAESTRO_DATABASE_PATH"`
	LogQueries   bool   `yaml:"log_queries" env:"DB_LOG_QUERIES" default:"false"`
}

// StorageConfig selects and configures the blob store backend.
// Type is one of "filesystem", "gridfs" or "memory". GridFS requires the
// mongo document store.
type StorageConfig struct {
	Type        string `yaml:"type" env:"MAESTRO_STORAGE_TYPE" default:"filesystem"`
	BlobDir     string `yaml:"blob_dir" env:"MAESTRO_BLOB_DIR"`
	Bucket      string `yaml:"bucket" env:"MAESTRO_GRIDFS_BUCKET" default:"fs"`
	MaxFileSize int64  `yaml:"max_file_size" env:"MAESTRO_MAX_FILE_SIZE" default:"52428800"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" env:"MAESTRO_LOG_LEVEL" default:"info"`
}

// Manager manages application configuration with reload support
type Manager struct {
	config     *Config
	configPath string
	watchers   []Watcher
	mu         sync.RWMutex
}

// Watcher is called when configuration changes
type Watcher func(oldConfig, newConfig *Config)

var (
	globalManager *Manager
	once          sync.Once
)

// GetManager returns the global configuration manager instance
func GetManager() *Manager {
	once.Do(func() {
		globalManager = NewManager()
	})
	return globalManager
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config:   Default(),
		watchers: make([]Watcher, 0),
	}
}

// Default returns the default application configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			EnableCORS:   true,
		},
		Database: DatabaseConfig{
			Type:     "sqlite",
			MongoURI: "mongodb://localhost:27017",
			MongoDB:  "maestro",
			Host:     "localhost",
			Port:     5432,
			Username: "maestro",
			Database: "maestro",
			DataDir:  "./data",
		},
		Storage: StorageConfig{
			Type:        "filesystem",
			Bucket:      "fs",
			MaxFileSize: 50 * 1024 * 1024, // 50MB
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func (m *Manager) LoadConfig(configPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := *m.config
	m.configPath = configPath

	newConfig := Default()

	if configPath != "" && fileExists(configPath) {
		if err := loadFromFile(configPath, newConfig); err != nil {
			return fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := loadStructFromEnv(reflect.ValueOf(newConfig).Elem()); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := validate(newConfig); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDerived(newConfig)

	m.config = newConfig

	for _, watcher := range m.watchers {
		go watcher(&oldConfig, newConfig)
	}

	return nil
}

// GetConfig returns the current configuration (thread-safe)
func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modifications
	configCopy := *m.config
	return &configCopy
}

// ConfigPath returns the path of the last loaded configuration file.
func (m *Manager) ConfigPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configPath
}

// AddWatcher adds a configuration change watcher
func (m *Manager) AddWatcher(watcher Watcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, watcher)
}

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadStructFromEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) {
			if err := loadStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue := os.Getenv(envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
		} else {
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(intVal)
		}
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolVal)
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

func validate(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Type {
	case "mongo", "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	switch config.Storage.Type {
	case "filesystem", "gridfs", "memory":
	default:
		return fmt.Errorf("unsupported storage type: %s", config.Storage.Type)
	}

	if config.Storage.Type == "gridfs" && config.Database.Type != "mongo" {
		return fmt.Errorf("gridfs storage requires the mongo document store, not %s", config.Database.Type)
	}

	if config.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max file size: %d", config.Storage.MaxFileSize)
	}

	return nil
}

func applyDerived(config *Config) {
	if config.Database.DatabasePath == "" && config.Database.Type == "sqlite" {
		config.Database.DatabasePath = filepath.Join(config.Database.DataDir, "maestro.db")
	}

	if config.Storage.BlobDir == "" {
		config.Storage.BlobDir = filepath.Join(config.Database.DataDir, "blobs")
	}

	config.Logging.Level = strings.ToLower(config.Logging.Level)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Global convenience functions

// Get returns the current global configuration
func Get() *Config {
	return GetManager().GetConfig()
}

// Load loads configuration from the specified path
func Load(configPath string) error {
	return GetManager().LoadConfig(configPath)
}

// AddWatcher adds a global configuration watcher
func AddWatcher(watcher Watcher) {
	GetManager().AddWatcher(watcher)
}
