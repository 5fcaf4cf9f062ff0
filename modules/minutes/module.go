package minutes

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
	"gorm.io/gorm"
)

// Module provides the minutes approval engine as a mono module.
type Module struct {
	db      *gorm.DB
	users   Directory
	service *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates the minutes module. The engine is built here so the API
// module can be wired to it before the app starts.
func NewModule(db *gorm.DB, users Directory) *Module {
	return &Module{
		db:      db,
		users:   users,
		service: NewService(NewRepository(db), users, NewPDFRenderer()),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "minutes"
}

// Init initializes the module.
func (m *Module) Init(_ mono.ServiceContainer) error {
	log.Println("[minutes] Approval engine initialized")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[minutes] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[minutes] Module stopped")
	return nil
}

// GetService returns the approval engine.
func (m *Module) GetService() *Service {
	return m.service
}
