// Package task provides the task entity and its status state machine.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusPending indicates the task has been assigned but not started.
	StatusPending Status = "PENDING"
	// StatusInProgress indicates the assignee is working on the task.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusCompleted indicates the task is done. Completed tasks are terminal.
	StatusCompleted Status = "COMPLETED"
	// StatusOverdue indicates the due date passed before completion.
	// Only the sweeper may set this status.
	StatusOverdue Status = "OVERDUE"
)

// IsValid returns true if the status is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	default:
		return false
	}
}

// Priority represents the urgency of a task.
type Priority string

const (
	// PriorityLow is for tasks that can wait.
	PriorityLow Priority = "LOW"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "MEDIUM"
	// PriorityHigh is for urgent tasks.
	PriorityHigh Priority = "HIGH"
)

// IsValid returns true if the priority is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Transitions maps each status to the set of statuses a caller may move to.
// OVERDUE is absent as a target: it is reachable only through the sweeper.
var Transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusOverdue:    {StatusInProgress, StatusCompleted},
	StatusCompleted:  {},
}

// AllowedFrom returns the statuses a task in the given status may move to.
func AllowedFrom(s Status) []Status {
	allowed := Transitions[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether a user-requested move from one status to
// another is within the transition table.
func CanTransition(from, to Status) bool {
	for _, s := range Transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ActorKind distinguishes user-driven from system-driven audit entries.
type ActorKind string

const (
	// ActorUser marks an entry made by an authenticated user.
	ActorUser ActorKind = "user"
	// ActorSystem marks an entry made by the overdue sweeper.
	ActorSystem ActorKind = "system"
)

// Actor identifies who changed a task's status. System entries carry no ID.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// UserActor returns an actor for the given user ID.
func UserActor(id string) Actor {
	return Actor{Kind: ActorUser, ID: id}
}

// SystemActor returns the sweeper's actor identity.
func SystemActor() Actor {
	return Actor{Kind: ActorSystem}
}

// IsSystem returns true for sweeper-driven entries.
func (a Actor) IsSystem() bool {
	return a.Kind == ActorSystem
}

// StatusEntry is one record in a task's audit trail. Entries are append-only:
// they are never edited, reordered, or removed.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Actor     Actor     `json:"actor"`
	ChangedAt time.Time `json:"changed_at"`
}

// Task represents an assignment given to an executive member.
type Task struct {
	ID            string        `gorm:"primaryKey;type:text"`
	Title         string        `gorm:"not null;type:text"`
	Description   string        `gorm:"type:text"`
	AssignedTo    string        `gorm:"index;not null;type:text"`
	CreatedBy     string        `gorm:"index;not null;type:text"`
	DueDate       time.Time     `gorm:"index;not null"`
	Priority      Priority      `gorm:"not null;type:text"`
	Status        Status        `gorm:"index;not null;type:text"`
	CompletedAt   *time.Time
	StatusHistory []StatusEntry `gorm:"serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// New creates a task in PENDING with its audit trail seeded by the creator.
func New(title, description, assignedTo, createdBy string, dueDate time.Time, priority Priority) *Task {
	now := time.Now()
	if priority == "" {
		priority = PriorityMedium
	}
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      StatusPending,
		StatusHistory: []StatusEntry{{
			Status:    StatusPending,
			Actor:     UserActor(createdBy),
			ChangedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply moves the task to the given status and appends the audit entry.
// Callers are responsible for validating the transition first.
func (t *Task) Apply(to Status, actor Actor, at time.Time) {
	t.Status = to
	t.StatusHistory = append(t.StatusHistory, StatusEntry{
		Status:    to,
		Actor:     actor,
		ChangedAt: at,
	})
	if to == StatusCompleted {
		completed := at
		t.CompletedAt = &completed
	}
}

// Due reports whether the task should be swept: past due and still open.
func (t *Task) Due(now time.Time) bool {
	if t.Status != StatusPending && t.Status != StatusInProgress {
		return false
	}
	return t.DueDate.Before(now)
}
