package task

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
	"gorm.io/gorm"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
)

// Module provides the task lifecycle engine as a mono module.
type Module struct {
	db      *gorm.DB
	users   Directory
	bus     *eventbus.EventBus
	store   domain.Store
	service *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates the task module. The store and engine are built here so
// the sweeper and API modules can be wired to them before the app starts.
func NewModule(db *gorm.DB, users Directory, bus *eventbus.EventBus) *Module {
	store := NewRepository(db)
	return &Module{
		db:      db,
		users:   users,
		bus:     bus,
		store:   store,
		service: NewService(store, users, bus),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Init initializes the module.
func (m *Module) Init(_ mono.ServiceContainer) error {
	log.Println("[task] Lifecycle engine initialized")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[task] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[task] Module stopped")
	return nil
}

// GetService returns the lifecycle engine.
func (m *Module) GetService() *Service {
	return m.service
}

// GetStore returns the task store, shared with the sweeper.
func (m *Module) GetStore() domain.Store {
	return m.store
}
