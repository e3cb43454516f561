package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/maestrokit/maestro/internal/logger"
)

// WatchFile reloads the configuration whenever the config file changes on
// disk. It returns a stop function that shuts the watcher down.
func (m *Manager) WatchFile() (func(), error) {
	path := m.ConfigPath()
	if path == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the containing directory: editors replace files on save, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !sameFile(event.Name, path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := m.LoadConfig(path); err != nil {
					logger.Error("config reload failed", "path", path, "error", err)
					continue
				}
				logger.Info("configuration reloaded", "path", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return stop, nil
}

func sameFile(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}
