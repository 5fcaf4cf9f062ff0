package eventbus

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
)

// Module provides the EventBus as a mono module.
type Module struct {
	eventBus *EventBus
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new EventBus module around an existing bus.
func NewModule(eventBus *EventBus) *Module {
	return &Module{eventBus: eventBus}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "eventbus"
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[eventbus] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[eventbus] Module stopped")
	return nil
}

// GetEventBus returns the EventBus instance.
func (m *Module) GetEventBus() *EventBus {
	return m.eventBus
}
