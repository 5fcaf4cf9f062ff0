// Package minutes implements the meeting minutes approval engine.
package minutes

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
)

// Filter narrows minutes queries. Zero values match everything.
type Filter struct {
	Session      string
	Semester     string
	ApprovedOnly bool
}

// Repository is the gorm-backed minutes store. There is deliberately no
// delete: minutes are retained for audit.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new minutes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new minutes record.
func (r *Repository) Create(m *domain.Minutes) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create minutes: %w", err)
	}
	return nil
}

// FindByID retrieves a minutes record by its ID.
func (r *Repository) FindByID(id string) (*domain.Minutes, error) {
	var m domain.Minutes
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find minutes: %w", err)
	}
	return &m, nil
}

// Find retrieves minutes matching the filter, newest meeting first.
func (r *Repository) Find(filter Filter) ([]*domain.Minutes, error) {
	q := r.db.Order("date DESC")
	if filter.Session != "" {
		q = q.Where("session = ?", filter.Session)
	}
	if filter.Semester != "" {
		q = q.Where("semester = ?", filter.Semester)
	}
	if filter.ApprovedOnly {
		q = q.Where("approved = ?", true)
	}

	var out []*domain.Minutes
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to find minutes: %w", err)
	}
	return out, nil
}

// Save persists edits to an unapproved record. The write is guarded on the
// approval flag and never touches the approval columns, so an approval
// committed after the caller's read cannot be reverted by a stale copy.
func (r *Repository) Save(m *domain.Minutes) error {
	result := r.db.Model(&domain.Minutes{}).
		Where("id = ? AND approved = ?", m.ID, false).
		Select("*").
		Omit("id", "created_at", "created_by", "approved", "approved_by", "approved_at").
		Updates(m)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to save minutes: %w", err)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&domain.Minutes{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to save minutes: %w", err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrLocked
	}
	return nil
}

// MarkApproved flips the approval flag, guarded so a record can only be
// approved once even under concurrent attempts.
func (r *Repository) MarkApproved(m *domain.Minutes) error {
	result := r.db.Model(&domain.Minutes{}).
		Where("id = ? AND approved = ?", m.ID, false).
		Select("Approved", "ApprovedBy", "ApprovedAt", "UpdatedAt").
		Updates(m)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to approve minutes: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyApproved
	}
	return nil
}
