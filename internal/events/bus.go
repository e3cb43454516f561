package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/maestrokit/maestro/internal/logger"
)

// EventBus publishes events without blocking the caller and retains a bounded
// history for inspection over the API.
type EventBus interface {
	// PublishAsync publishes an event asynchronously (non-blocking)
	PublishAsync(event Event) error

	// Recent returns up to limit of the most recently published events,
	// newest first.
	Recent(limit int) []Event

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

const (
	defaultQueueSize   = 256
	defaultHistorySize = 128
)

type asyncBus struct {
	queue   chan Event
	history []Event
	mu      sync.RWMutex
	done    chan struct{}
	started bool
	wg      sync.WaitGroup
}

// NewEventBus creates an event bus with default queue and history sizes
func NewEventBus() EventBus {
	return &asyncBus{
		queue:   make(chan Event, defaultQueueSize),
		history: make([]Event, 0, defaultHistorySize),
		done:    make(chan struct{}),
	}
}

func (b *asyncBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	b.started = true

	b.wg.Add(1)
	go b.run()
	return nil
}

func (b *asyncBus) run() {
	defer b.wg.Done()
	for {
		select {
		case event := <-b.queue:
			b.record(event)
		case <-b.done:
			// Drain anything already queued before exiting.
			for {
				select {
				case event := <-b.queue:
					b.record(event)
				default:
					return
				}
			}
		}
	}
}

func (b *asyncBus) record(event Event) {
	b.mu.Lock()
	if len(b.history) == defaultHistorySize {
		copy(b.history, b.history[1:])
		b.history = b.history[:defaultHistorySize-1]
	}
	b.history = append(b.history, event)
	b.mu.Unlock()

	logger.Debug("event published", "type", event.Type, "title", event.Title)
}

func (b *asyncBus) PublishAsync(event Event) error {
	b.mu.RLock()
	started := b.started
	b.mu.RUnlock()
	if !started {
		return fmt.Errorf("event bus not started")
	}

	select {
	case b.queue <- event:
		return nil
	default:
		return fmt.Errorf("event queue full, dropping event %s", event.Type)
	}
}

func (b *asyncBus) Recent(limit int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit <= 0 || limit > len(b.history) {
		limit = len(b.history)
	}
	out := make([]Event, limit)
	for i := 0; i < limit; i++ {
		out[i] = b.history[len(b.history)-1-i]
	}
	return out
}

func (b *asyncBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = false
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
	return nil
}

// Global bus wiring, shared by the server and the library service.

var (
	globalMu  sync.RWMutex
	globalBus EventBus
)

// SetGlobalEventBus registers the application-wide event bus
func SetGlobalEventBus(bus EventBus) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalBus = bus
}

// GetGlobalEventBus returns the application-wide event bus (may be nil)
func GetGlobalEventBus() EventBus {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalBus
}
