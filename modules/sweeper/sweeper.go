// Package sweeper promotes past-due tasks to OVERDUE on a fixed interval.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
)

// Sweeper scans the task store for open tasks past their due date and forces
// the OVERDUE transition with the system actor. Each sweep is idempotent: it
// only considers current state, so a second pass over the same data changes
// nothing.
type Sweeper struct {
	store domain.Store
	bus   *eventbus.EventBus

	processed atomic.Uint64
	failed    atomic.Uint64
}

// New creates a Sweeper.
func New(store domain.Store, bus *eventbus.EventBus) *Sweeper {
	return &Sweeper{
		store: store,
		bus:   bus,
	}
}

// Result summarizes one sweep pass.
type Result struct {
	Scanned   int
	Swept     int
	Failed    int
	StartedAt time.Time
	Duration  time.Duration
}

// RunOnce executes one sweep pass. A failure on one task never aborts the
// pass for the rest; failures are counted and logged.
func (s *Sweeper) RunOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	result := Result{StartedAt: start}

	due, err := s.store.FindDue(start)
	if err != nil {
		return result, fmt.Errorf("query due tasks: %w", err)
	}
	result.Scanned = len(due)

	for _, t := range due {
		if err := s.sweep(ctx, t, start); err != nil {
			result.Failed++
			s.failed.Add(1)
			log.Printf("[sweeper] Failed to sweep task %s: %v", t.ID, err)
			continue
		}
		result.Swept++
		s.processed.Add(1)
	}

	result.Duration = time.Since(start)
	if result.Swept > 0 || result.Failed > 0 {
		log.Printf("[sweeper] Sweep done: %d scanned, %d marked overdue, %d failed in %v",
			result.Scanned, result.Swept, result.Failed, result.Duration)
	}
	return result, nil
}

// sweep transitions one task to OVERDUE. The guarded save means a user who
// moved the task between the query and the write simply wins: the stale
// sweep write becomes a no-op.
func (s *Sweeper) sweep(ctx context.Context, t *domain.Task, now time.Time) error {
	from := t.Status
	t.Apply(domain.StatusOverdue, domain.SystemActor(), now)

	if err := s.store.SaveTransition(t, from); err != nil {
		if errors.Is(err, domain.ErrStale) || errors.Is(err, domain.ErrNotFound) {
			// Lost the race to a user transition; nothing to do.
			return nil
		}
		return err
	}

	log.Printf("[sweeper] Task overdue: %s (%s)", t.Title, t.ID)

	// Notifications are fired after the transition is committed and never
	// roll it back.
	s.bus.PublishOverdue(ctx, t)
	return nil
}

// Processed returns the number of tasks marked overdue since start.
func (s *Sweeper) Processed() uint64 {
	return s.processed.Load()
}

// Failed returns the number of per-task failures since start.
func (s *Sweeper) Failed() uint64 {
	return s.failed.Load()
}
