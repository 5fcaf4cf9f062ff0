package sweeper

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
)

// DefaultInterval matches the reference deployment: one sweep per minute.
// Correctness does not depend on the interval; each pass catches up on
// everything currently past due.
const DefaultInterval = time.Minute

// Module runs the sweeper on a ticker with its own start/stop lifecycle.
type Module struct {
	sweeper  *Sweeper
	interval time.Duration

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates the sweeper module. The interval is taken from
// SWEEP_INTERVAL (a Go duration string) when set.
func NewModule(store domain.Store, bus *eventbus.EventBus) *Module {
	interval := DefaultInterval
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			interval = parsed
		} else {
			log.Printf("[sweeper] Invalid SWEEP_INTERVAL %q, using default %v", v, DefaultInterval)
		}
	}

	return &Module{
		sweeper:  New(store, bus),
		interval: interval,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "sweeper"
}

// Start launches the recurring sweep loop.
func (m *Module) Start(_ context.Context) error {
	m.stopChan = make(chan struct{})
	m.doneChan = make(chan struct{})

	go m.run()

	log.Printf("[sweeper] Module started (interval: %v)", m.interval)
	return nil
}

// run executes sweeps until stopped. A failing sweep never terminates the
// schedule.
func (m *Module) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.doneChan)

	for {
		select {
		case <-m.stopChan:
			log.Println("[sweeper] Received stop signal")
			return
		case <-ticker.C:
			if _, err := m.sweeper.RunOnce(context.Background()); err != nil {
				log.Printf("[sweeper] Sweep error: %v", err)
			}
		}
	}
}

// Stop shuts the sweep loop down gracefully.
func (m *Module) Stop(ctx context.Context) error {
	if m.stopChan == nil {
		return nil
	}

	m.stopOnce.Do(func() {
		close(m.stopChan)
	})

	select {
	case <-m.doneChan:
		log.Println("[sweeper] Module stopped")
	case <-ctx.Done():
		log.Println("[sweeper] Shutdown timeout exceeded")
		return ctx.Err()
	}
	return nil
}

// GetSweeper returns the sweeper, used to trigger a pass synchronously.
func (m *Module) GetSweeper() *Sweeper {
	return m.sweeper
}
