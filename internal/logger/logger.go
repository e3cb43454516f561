// Package logger provides the application-wide structured logger.
package logger

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu  sync.RWMutex
	log = hclog.New(&hclog.LoggerOptions{
		Name:   "maestro",
		Level:  hclog.Info,
		Output: os.Stdout,
	})
)

// Configure replaces the global logger with one at the given level.
// Unknown level strings fall back to info.
func Configure(level string) {
	mu.Lock()
	defer mu.Unlock()

	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.Info
	}
	log = hclog.New(&hclog.LoggerOptions{
		Name:   "maestro",
		Level:  parsed,
		Output: os.Stdout,
	})
}

// Named returns a sub-logger with the given name appended.
func Named(name string) hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.Named(name)
}

// Debug logs debug messages
func Debug(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug(msg, args...)
}

// Info logs informational messages
func Info(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info(msg, args...)
}

// Warn logs warning messages
func Warn(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn(msg, args...)
}

// Error logs error messages
func Error(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error(msg, args...)
}
