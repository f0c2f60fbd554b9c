package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"framesnatch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSamplingStarted   = domain.EventSamplingStarted
	EventSamplingProgress  = domain.EventSamplingProgress
	EventSnapshotWritten   = domain.EventSnapshotWritten
	EventSamplingCompleted = domain.EventSamplingCompleted
	EventSamplingFailed    = domain.EventSamplingFailed
	EventSamplingCanceled  = domain.EventSamplingCanceled
	EventSamplingRequested = domain.EventSamplingRequested
	EventGalleryLoaded     = domain.EventGalleryLoaded
	EventGalleryRequested  = domain.EventGalleryRequested
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
	EventConfigChanged     = domain.EventConfigChanged
)

// Re-export domain event types
type SamplingStartedEvent = domain.SamplingStartedEvent
type SamplingProgressEvent = domain.SamplingProgressEvent
type SnapshotWrittenEvent = domain.SnapshotWrittenEvent
type SamplingCompletedEvent = domain.SamplingCompletedEvent
type SamplingFailedEvent = domain.SamplingFailedEvent
type SamplingCanceledEvent = domain.SamplingCanceledEvent
type SamplingRequestedEvent = domain.SamplingRequestedEvent
type GalleryLoadedEvent = domain.GalleryLoadedEvent
type GalleryRequestedEvent = domain.GalleryRequestedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]EventHandler
	eventChan chan DomainEvent
	logger    *zap.Logger
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]EventHandler),
		eventChan: make(chan DomainEvent, 1000),
		logger:    logger,
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Progress events fire once per decoded frame; logging them would
	// swamp the log file.
	if event.Type() != EventSamplingProgress {
		b.logger.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, log and drop
		b.logger.Warn("event bus channel full, dropping event",
			zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	idx := len(b.handlers[eventType]) - 1

	// Unsubscribing nils the slot instead of removing it, so indices held
	// by other unsubscribe closures stay valid.
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if handlers := b.handlers[eventType]; idx < len(handlers) {
			handlers[idx] = nil
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Get handlers for this event type
			b.mu.RLock()
			handlers := b.handlers[event.Type()]
			// Make a copy to avoid holding lock during handler execution
			handlersCopy := make([]EventHandler, len(handlers))
			copy(handlersCopy, handlers)
			b.mu.RUnlock()

			// Handlers run synchronously on the dispatcher goroutine so
			// every subscriber observes events in publish order. Publish
			// itself stays non-blocking via the buffered channel.
			for _, handler := range handlersCopy {
				if handler == nil {
					continue // unsubscribed
				}
				b.invoke(handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}

// invoke runs one handler, containing any panic so a buggy subscriber
// cannot take down the dispatcher.
func (b *bus) invoke(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()

	h(event)
}
