// Package minutes provides the meeting minutes entity and its approval rules.
package minutes

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// Default values matching the department's record-keeping conventions.
const (
	DefaultVenue    = "Not specified"
	DefaultTime     = "Not specified"
	DefaultSession  = "2024/2025"
	DefaultSemester = "First Semester"
)

// Attendee is the input form of an attendance entry.
type Attendee struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Display returns the normalized string stored in the attendance list,
// e.g. "Precious Adetipe (ADMIN)".
func (a Attendee) Display() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Role)
}

// NormalizeAttendance converts attendee input into display strings.
// Entries without a name are rejected.
func NormalizeAttendance(attendees []Attendee) ([]string, error) {
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		if a.Name == "" {
			return nil, ErrInvalidAttendance
		}
		out = append(out, a.Display())
	}
	return out, nil
}

// Minutes represents one meeting's minutes record. Once approved, the record
// is permanently read-only.
type Minutes struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Title        string    `gorm:"not null;type:text"`
	Date         time.Time `gorm:"index;not null"`
	Time         string    `gorm:"type:text"`
	Venue        string    `gorm:"type:text"`
	MinutesText  string    `gorm:"not null;type:text"`
	RecordingURL string    `gorm:"type:text"`
	Attendance   []string  `gorm:"serializer:json"`
	Session      string    `gorm:"index;type:text"`
	Semester     string    `gorm:"index;type:text"`
	Approved     bool      `gorm:"index;not null;default:false"`
	ApprovedBy   string    `gorm:"type:text"`
	ApprovedAt   *time.Time
	CreatedBy    string    `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the Minutes entity.
func (Minutes) TableName() string {
	return "minutes"
}

// New creates an unapproved minutes record with defaults filled in.
func New(title string, date time.Time, minutesText, createdBy string) *Minutes {
	now := time.Now()
	return &Minutes{
		ID:          uuid.New().String(),
		Title:       title,
		Date:        date,
		Time:        DefaultTime,
		Venue:       DefaultVenue,
		MinutesText: minutesText,
		Session:     DefaultSession,
		Semester:    DefaultSemester,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Approve locks the record. The caller must have checked the approval rules.
func (m *Minutes) Approve(approverID string, at time.Time) {
	m.Approved = true
	m.ApprovedBy = approverID
	approved := at
	m.ApprovedAt = &approved
}

// VisibleTo reports whether the record may be read by the given role.
// Executives see only approved records; administrators see all.
func (m *Minutes) VisibleTo(role user.Role) bool {
	return role == user.RoleAdmin || m.Approved
}
