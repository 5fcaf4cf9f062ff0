// Package task implements the task lifecycle engine.
package task

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/task"
)

// Repository is the gorm-backed task store.
type Repository struct {
	db *gorm.DB
}

// Compile-time interface check.
var _ domain.Store = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// FindAll retrieves all tasks ordered by due date.
func (r *Repository) FindAll() ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindForUser retrieves tasks assigned to the user, ordered by due date.
func (r *Repository) FindForUser(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Where("assigned_to = ?", userID).Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindDue retrieves open tasks whose due date has passed.
func (r *Repository) FindDue(now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("status IN ?", []domain.Status{domain.StatusPending, domain.StatusInProgress}).
		Where("due_date < ?", now).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due tasks: %w", err)
	}
	return tasks, nil
}

// SaveTransition persists a status change guarded by the expected prior
// status, so a concurrent writer cannot be silently overwritten. A lost race
// surfaces as ErrStale.
func (r *Repository) SaveTransition(t *domain.Task, from domain.Status) error {
	t.UpdatedAt = time.Now()
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND status = ?", t.ID, from).
		Select("Status", "CompletedAt", "StatusHistory", "UpdatedAt").
		Updates(t)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		// Either the task is gone or another writer moved it first.
		if _, err := r.FindByID(t.ID); err != nil {
			return err
		}
		return domain.ErrStale
	}
	return nil
}
