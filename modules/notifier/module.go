package notifier

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"

	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
)

// Module wires the Notifier into the application lifecycle. It subscribes to
// task events on Start and owns the optional Redis connection backing the
// in-app notification store.
type Module struct {
	bus      *eventbus.EventBus
	users    Directory
	mailer   EmailSender
	store    Store
	notifier *Notifier
	client   *redis.Client
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the notifier module.
func NewModule(bus *eventbus.EventBus, users Directory, mailer EmailSender) *Module {
	return &Module{
		bus:    bus,
		users:  users,
		mailer: mailer,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notifier"
}

// Init selects the notification store and email transport from the
// environment. With REDIS_ADDR set, in-app notifications persist in Redis;
// otherwise they live in process memory.
func (m *Module) Init(_ mono.ServiceContainer) error {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		m.client = redis.NewClient(&redis.Options{
			Addr:         addr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err := m.client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		m.store = NewRedisStore(m.client)
		log.Printf("[notifier] Using Redis notification store at %s", addr)
	} else {
		m.store = NewMemoryStore()
		log.Println("[notifier] Using in-memory notification store")
	}

	m.notifier = New(m.mailer, m.store, m.users)
	return nil
}

// Start subscribes to task events.
func (m *Module) Start(_ context.Context) error {
	m.bus.SubscribeAll(m.notifier.HandleEvent)
	log.Println("[notifier] Module started")
	return nil
}

// Stop closes the Redis connection if one was opened.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[notifier] Module stopped")
	return nil
}

// Health reports whether the notification store is reachable.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client != nil {
		if err := m.client.Ping(ctx).Err(); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
		return mono.HealthStatus{
			Healthy: true,
			Message: "operational",
			Details: map[string]any{"store": "redis"},
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"store": "memory"},
	}
}

// GetStore returns the in-app notification store.
func (m *Module) GetStore() Store {
	return m.store
}
