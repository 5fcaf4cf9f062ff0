// Package eventbus provides an in-memory event bus for task lifecycle events.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/stack-Tech-1/dept-exec-backend/domain/task"
)

// Handler is a function that handles task events.
type Handler func(event task.Event)

// EventBus provides publish-subscribe functionality for task events.
// Handlers run asynchronously so publishers never block on delivery; this is
// the fire-and-forget contract between state changes and notifications.
type EventBus struct {
	handlers map[task.EventType][]Handler
	mu       sync.RWMutex
}

// New creates a new EventBus.
func New() *EventBus {
	return &EventBus{
		handlers: make(map[task.EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type.
func (eb *EventBus) Subscribe(eventType task.EventType, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	log.Printf("[eventbus] Subscribed to %s", eventType)
}

// SubscribeAll registers a handler for all task event types.
func (eb *EventBus) SubscribeAll(handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eventTypes := []task.EventType{
		task.EventTypeAssigned,
		task.EventTypeCompleted,
		task.EventTypeOverdue,
	}

	for _, et := range eventTypes {
		eb.handlers[et] = append(eb.handlers[et], handler)
	}
	log.Println("[eventbus] Subscribed to all event types")
}

// Publish publishes an event to all registered handlers.
func (eb *EventBus) Publish(_ context.Context, event task.Event) {
	eb.mu.RLock()
	handlers := eb.handlers[event.Type]
	eb.mu.RUnlock()

	for _, handler := range handlers {
		// Run handlers asynchronously to not block the publisher
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[eventbus] Handler panic for %s: %v", event.Type, r)
				}
			}()
			h(event)
		}(handler)
	}
}

// PublishAssigned publishes a task assigned event.
func (eb *EventBus) PublishAssigned(ctx context.Context, t *task.Task) {
	eb.Publish(ctx, task.NewAssignedEvent(t))
}

// PublishCompleted publishes a task completed event.
func (eb *EventBus) PublishCompleted(ctx context.Context, t *task.Task) {
	eb.Publish(ctx, task.NewCompletedEvent(t))
}

// PublishOverdue publishes a task overdue event.
func (eb *EventBus) PublishOverdue(ctx context.Context, t *task.Task) {
	eb.Publish(ctx, task.NewOverdueEvent(t))
}

// HandlerCount returns the number of handlers for a specific event type.
func (eb *EventBus) HandlerCount(eventType task.EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}
