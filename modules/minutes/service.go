package minutes

import (
	"context"
	"log"
	"time"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// Store is the durable collection of minutes records.
type Store interface {
	Create(m *domain.Minutes) error
	FindByID(id string) (*domain.Minutes, error)
	Find(filter Filter) ([]*domain.Minutes, error)
	Save(m *domain.Minutes) error
	MarkApproved(m *domain.Minutes) error
}

// Directory looks up users for export snapshots.
type Directory interface {
	FindByID(id string) (*user.User, error)
}

// Service is the minutes approval engine: draft records editable by
// administrators, locked permanently on approval, approved by someone other
// than their creator, visible to executives only once approved.
type Service struct {
	store    Store
	users    Directory
	renderer Renderer
}

// NewService creates the approval engine.
func NewService(store Store, users Directory, renderer Renderer) *Service {
	return &Service{
		store:    store,
		users:    users,
		renderer: renderer,
	}
}

// CreateInput holds the fields for a new minutes record.
type CreateInput struct {
	Title        string
	Date         time.Time
	Time         string
	Venue        string
	MinutesText  string
	RecordingURL string
	Attendance   []domain.Attendee
	Session      string
	Semester     string
}

// Create persists a new unapproved record. Administrators only. Attendance
// input is normalized into display strings at write time.
func (s *Service) Create(_ context.Context, in CreateInput, actor user.Principal) (*domain.Minutes, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminsOnly
	}
	if in.Title == "" || in.Date.IsZero() || in.MinutesText == "" {
		return nil, domain.ErrMissingFields
	}

	attendance, err := domain.NormalizeAttendance(in.Attendance)
	if err != nil {
		return nil, err
	}

	m := domain.New(in.Title, in.Date, in.MinutesText, actor.ID)
	if in.Time != "" {
		m.Time = in.Time
	}
	if in.Venue != "" {
		m.Venue = in.Venue
	}
	if in.Session != "" {
		m.Session = in.Session
	}
	if in.Semester != "" {
		m.Semester = in.Semester
	}
	m.RecordingURL = in.RecordingURL
	m.Attendance = attendance

	if err := s.store.Create(m); err != nil {
		return nil, err
	}

	log.Printf("[minutes] Created minutes %s (%s) by %s", m.ID, m.Title, actor.ID)
	return m, nil
}

// List returns records matching the filter. Executives see only approved
// records regardless of what the filter asks for.
func (s *Service) List(_ context.Context, filter Filter, actor user.Principal) ([]*domain.Minutes, error) {
	if !actor.IsAdmin() {
		filter.ApprovedOnly = true
	}
	return s.store.Find(filter)
}

// Get returns one record. An executive requesting an unapproved record gets
// Forbidden, never NotFound, so error codes do not reveal existence.
func (s *Service) Get(_ context.Context, id string, actor user.Principal) (*domain.Minutes, error) {
	m, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !m.VisibleTo(actor.Role) {
		return nil, domain.ErrNotApproved
	}
	return m, nil
}

// UpdateInput carries a partial update; nil fields retain prior values.
type UpdateInput struct {
	Title        *string
	Date         *time.Time
	Time         *string
	Venue        *string
	MinutesText  *string
	RecordingURL *string
	Attendance   []domain.Attendee
	Session      *string
	Semester     *string
}

// Update applies a partial edit to an unapproved record. The approval lock is
// checked before any field logic; no partial edit bypasses it.
func (s *Service) Update(_ context.Context, id string, in UpdateInput, actor user.Principal) (*domain.Minutes, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminsOnly
	}

	m, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if m.Approved {
		return nil, domain.ErrLocked
	}

	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.Time != nil {
		m.Time = *in.Time
	}
	if in.Venue != nil {
		m.Venue = *in.Venue
	}
	if in.MinutesText != nil {
		m.MinutesText = *in.MinutesText
	}
	if in.RecordingURL != nil {
		m.RecordingURL = *in.RecordingURL
	}
	if in.Session != nil {
		m.Session = *in.Session
	}
	if in.Semester != nil {
		m.Semester = *in.Semester
	}
	if in.Attendance != nil {
		attendance, err := domain.NormalizeAttendance(in.Attendance)
		if err != nil {
			return nil, err
		}
		m.Attendance = attendance
	}
	m.UpdatedAt = time.Now()

	if err := s.store.Save(m); err != nil {
		return nil, err
	}

	log.Printf("[minutes] Updated minutes %s by %s", m.ID, actor.ID)
	return m, nil
}

// Approve locks the record permanently. A second approval is a Conflict, not
// a no-op, and the creator can never approve their own record.
func (s *Service) Approve(_ context.Context, id string, actor user.Principal) (*domain.Minutes, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminsOnly
	}

	m, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if m.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	if m.CreatedBy == actor.ID {
		return nil, domain.ErrSelfApproval
	}

	m.Approve(actor.ID, time.Now())
	if err := s.store.MarkApproved(m); err != nil {
		return nil, err
	}

	log.Printf("[minutes] Approved minutes %s by %s", m.ID, actor.ID)
	return m, nil
}

// Export renders an approved record to the fixed document format. The record
// itself is never mutated by rendering.
func (s *Service) Export(_ context.Context, id string, actor user.Principal) ([]byte, error) {
	m, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !m.VisibleTo(actor.Role) {
		return nil, domain.ErrNotApproved
	}
	if !m.Approved {
		return nil, domain.ErrExportUnapproved
	}

	return s.renderer.Render(s.snapshot(m))
}

// snapshot produces the reproducible view of an approved record, resolving
// creator and approver identities by name.
func (s *Service) snapshot(m *domain.Minutes) Snapshot {
	snap := Snapshot{
		Title:      m.Title,
		Date:       m.Date,
		Time:       m.Time,
		Venue:      m.Venue,
		Session:    m.Session,
		Semester:   m.Semester,
		Attendance: m.Attendance,
		Text:       m.MinutesText,
		CreatedAt:  m.CreatedAt,
	}
	if m.ApprovedAt != nil {
		snap.ApprovedAt = *m.ApprovedAt
	}
	if u, err := s.users.FindByID(m.CreatedBy); err == nil {
		snap.CreatedByName = u.Name
	} else {
		snap.CreatedByName = "Unknown"
	}
	if u, err := s.users.FindByID(m.ApprovedBy); err == nil {
		snap.ApprovedByName = u.Name
	} else {
		snap.ApprovedByName = "Unknown"
	}
	return snap
}
