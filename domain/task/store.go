package task

import (
	"sort"
	"sync"
	"time"
)

// Store is the durable collection of tasks. Both the lifecycle engine and the
// overdue sweeper write through it, unsynchronized with each other, so
// SaveTransition must be atomic per task: the update applies only if the task
// is still in the expected status, and reports ErrStale otherwise.
type Store interface {
	Create(t *Task) error
	FindByID(id string) (*Task, error)
	FindAll() ([]*Task, error)
	FindForUser(userID string) ([]*Task, error)
	FindDue(now time.Time) ([]*Task, error)
	SaveTransition(t *Task, from Status) error
}

// MemoryStore is an in-process Store. The HTTP layer runs on the gorm-backed
// repository; this one backs tests and small single-run deployments.
type MemoryStore struct {
	tasks map[string]*Task
	mu    sync.RWMutex
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*Task),
	}
}

// Create stores a new task.
func (s *MemoryStore) Create(t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := clone(t)
	s.tasks[t.ID] = cp
	return nil
}

// FindByID retrieves a task by its ID.
func (s *MemoryStore) FindByID(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tasks[id]
	if !exists {
		return nil, ErrNotFound
	}
	return clone(t), nil
}

// FindAll retrieves all tasks ordered by due date.
func (s *MemoryStore) FindAll() ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, clone(t))
	}
	sortByDueDate(out)
	return out, nil
}

// FindForUser retrieves tasks assigned to the user, ordered by due date.
func (s *MemoryStore) FindForUser(userID string) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Task, 0)
	for _, t := range s.tasks {
		if t.AssignedTo == userID {
			out = append(out, clone(t))
		}
	}
	sortByDueDate(out)
	return out, nil
}

// FindDue retrieves open tasks whose due date has passed.
func (s *MemoryStore) FindDue(now time.Time) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Task, 0)
	for _, t := range s.tasks {
		if t.Due(now) {
			out = append(out, clone(t))
		}
	}
	sortByDueDate(out)
	return out, nil
}

// SaveTransition persists a status change if the stored task is still in the
// expected prior status.
func (s *MemoryStore) SaveTransition(t *Task, from Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.tasks[t.ID]
	if !exists {
		return ErrNotFound
	}
	if stored.Status != from {
		return ErrStale
	}

	cp := clone(t)
	cp.UpdatedAt = time.Now()
	s.tasks[t.ID] = cp
	return nil
}

func clone(t *Task) *Task {
	cp := *t
	cp.StatusHistory = make([]StatusEntry, len(t.StatusHistory))
	copy(cp.StatusHistory, t.StatusHistory)
	return &cp
}

func sortByDueDate(tasks []*Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}
