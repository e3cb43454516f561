package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "filesystem", cfg.Storage.Type)
	assert.Equal(t, int64(50*1024*1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maestro.yaml")
	content := `
server:
  port: 9090
database:
  type: memory
storage:
  type: memory
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	manager := NewManager()
	require.NoError(t, manager.LoadConfig(path))

	cfg := manager.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// File values override defaults, not erase them.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maestro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("MAESTRO_PORT", "7070")

	manager := NewManager()
	require.NoError(t, manager.LoadConfig(path))

	assert.Equal(t, 7070, manager.GetConfig().Server.Port)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")))

	assert.Equal(t, 8080, manager.GetConfig().Server.Port)
}

func TestValidateRejectsGridFSWithoutMongo(t *testing.T) {
	cfg := Default()
	cfg.Database.Type = "sqlite"
	cfg.Storage.Type = "gridfs"

	assert.Error(t, validate(cfg))

	cfg.Database.Type = "mongo"
	assert.NoError(t, validate(cfg))
}

func TestValidateRejectsUnknownTypes(t *testing.T) {
	cfg := Default()
	cfg.Database.Type = "cassandra"
	assert.Error(t, validate(cfg))

	cfg = Default()
	cfg.Storage.Type = "tape"
	assert.Error(t, validate(cfg))
}

func TestApplyDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.Database.DataDir = "/var/lib/maestro"
	cfg.Database.DatabasePath = ""
	cfg.Storage.BlobDir = ""

	applyDerived(cfg)

	assert.Equal(t, filepath.Join("/var/lib/maestro", "maestro.db"), cfg.Database.DatabasePath)
	assert.Equal(t, filepath.Join("/var/lib/maestro", "blobs"), cfg.Storage.BlobDir)
}

func TestWatcherCalledOnReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maestro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))

	manager := NewManager()
	called := make(chan int, 1)
	manager.AddWatcher(func(oldConfig, newConfig *Config) {
		called <- newConfig.Server.Port
	})

	require.NoError(t, manager.LoadConfig(path))

	select {
	case port := <-called:
		assert.Equal(t, 9090, port)
	case <-time.After(time.Second):
		t.Fatal("watcher was not called")
	}
}
