package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
)

// Directory looks up users so the engine can validate assignees.
type Directory interface {
	FindByID(id string) (*user.User, error)
}

// Service is the task lifecycle engine. It enforces the status state machine,
// ownership rules, and the audit trail, and publishes events for the
// notification side effects.
type Service struct {
	store domain.Store
	users Directory
	bus   *eventbus.EventBus
}

// NewService creates the lifecycle engine.
func NewService(store domain.Store, users Directory, bus *eventbus.EventBus) *Service {
	return &Service{
		store: store,
		users: users,
		bus:   bus,
	}
}

// CreateInput holds the fields for a new task.
type CreateInput struct {
	Title       string
	Description string
	AssignedTo  string
	DueDate     time.Time
	Priority    domain.Priority
}

// Create creates a task in PENDING, seeds its audit trail with the creator,
// and notifies the assignee. Administrators only; the role gate sits at the
// route layer and is re-checked here.
func (s *Service) Create(ctx context.Context, in CreateInput, actor user.Principal) (*domain.Task, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotOwner
	}
	if in.Title == "" || in.AssignedTo == "" || in.DueDate.IsZero() {
		return nil, domain.ErrMissingFields
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}
	if _, err := s.users.FindByID(in.AssignedTo); err != nil {
		return nil, fmt.Errorf("invalid assignee: %w", err)
	}

	t := domain.New(in.Title, in.Description, in.AssignedTo, actor.ID, in.DueDate, in.Priority)
	if err := s.store.Create(t); err != nil {
		return nil, err
	}

	s.bus.PublishAssigned(ctx, t)
	log.Printf("[task] Created task %s (%s) for %s", t.ID, t.Title, t.AssignedTo)
	return t, nil
}

// List returns the tasks visible to the caller: executives see their own
// assignments, administrators see everything. Ordered by due date.
func (s *Service) List(_ context.Context, actor user.Principal) ([]*domain.Task, error) {
	if actor.Role == user.RoleExec {
		return s.store.FindForUser(actor.ID)
	}
	return s.store.FindAll()
}

// Get returns one task. Executives may only fetch their own assignments.
func (s *Service) Get(_ context.Context, id string, actor user.Principal) (*domain.Task, error) {
	t, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == user.RoleExec && t.AssignedTo != actor.ID {
		return nil, domain.ErrNotOwner
	}
	return t, nil
}

// UpdateStatus moves a task along the state machine on behalf of a user.
// The guard order is fixed: existence, ownership, the OVERDUE reservation,
// the COMPLETED terminal lock, then the transition table.
func (s *Service) UpdateStatus(ctx context.Context, taskID string, requested domain.Status, actor user.Principal) (*domain.Task, error) {
	if !requested.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	t, err := s.store.FindByID(taskID)
	if err != nil {
		return nil, err
	}

	if actor.Role == user.RoleExec && t.AssignedTo != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if requested == domain.StatusOverdue {
		return nil, domain.ErrStatusReserved
	}
	if t.Status == domain.StatusCompleted {
		return nil, domain.ErrCompleted
	}
	if requested != t.Status && !domain.CanTransition(t.Status, requested) {
		return nil, domain.NewInvalidTransitionError(t.Status, requested)
	}

	from := t.Status
	t.Apply(requested, domain.UserActor(actor.ID), time.Now())

	if err := s.store.SaveTransition(t, from); err != nil {
		return nil, err
	}

	if requested == domain.StatusCompleted {
		s.bus.PublishCompleted(ctx, t)
	}
	log.Printf("[task] Task %s moved %s -> %s by %s", t.ID, from, requested, actor.ID)
	return t, nil
}
