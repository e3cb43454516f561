// Package apiroutes keeps a registry of the HTTP routes the server exposes,
// served back from the /api index endpoint.
package apiroutes

import (
	"sync"
)

// Route describes one registered API route.
type Route struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

var (
	mu     sync.RWMutex
	routes []Route
)

// Register records a route and its description.
func Register(path, method, description string) {
	mu.Lock()
	defer mu.Unlock()
	routes = append(routes, Route{Path: path, Method: method, Description: description})
}

// All returns a copy of the registered routes.
func All() []Route {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// ClearForTesting removes all registered routes. For use in tests only.
func ClearForTesting() {
	mu.Lock()
	defer mu.Unlock()
	routes = nil
}
