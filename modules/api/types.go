package api

import (
	"time"

	dminutes "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
	dtask "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// CreateTaskRequest is the body for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// UpdateTaskStatusRequest is the body for PATCH /api/tasks/:id/status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// TaskResponse is the wire shape of a task.
type TaskResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	AssignedTo    string              `json:"assigned_to"`
	CreatedBy     string              `json:"created_by"`
	DueDate       time.Time           `json:"due_date"`
	Priority      dtask.Priority      `json:"priority"`
	Status        dtask.Status        `json:"status"`
	StatusHistory []dtask.StatusEntry `json:"status_history"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toTaskResponse(t *dtask.Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		AssignedTo:    t.AssignedTo,
		CreatedBy:     t.CreatedBy,
		DueDate:       t.DueDate,
		Priority:      t.Priority,
		Status:        t.Status,
		StatusHistory: t.StatusHistory,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// CreateMinutesRequest is the body for POST /api/minutes.
type CreateMinutesRequest struct {
	Title        string             `json:"title"`
	Date         string             `json:"date"`
	Time         string             `json:"time"`
	Venue        string             `json:"venue"`
	Minutes      string             `json:"minutes"`
	RecordingURL string             `json:"recording_url"`
	Attendance   []dminutes.Attendee `json:"attendance"`
	Session      string             `json:"session"`
	Semester     string             `json:"semester"`
}

// UpdateMinutesRequest carries a partial patch; absent fields stay untouched.
type UpdateMinutesRequest struct {
	Title        *string             `json:"title"`
	Date         *string             `json:"date"`
	Time         *string             `json:"time"`
	Venue        *string             `json:"venue"`
	Minutes      *string             `json:"minutes"`
	RecordingURL *string             `json:"recording_url"`
	Attendance   []dminutes.Attendee `json:"attendance"`
	Session      *string             `json:"session"`
	Semester     *string             `json:"semester"`
}

// MinutesResponse is the wire shape of a minutes record.
type MinutesResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Date         time.Time  `json:"date"`
	Time         string     `json:"time"`
	Venue        string     `json:"venue"`
	Minutes      string     `json:"minutes"`
	RecordingURL string     `json:"recording_url,omitempty"`
	Attendance   []string   `json:"attendance"`
	Session      string     `json:"session"`
	Semester     string     `json:"semester"`
	Approved     bool       `json:"approved"`
	ApprovedBy   string     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toMinutesResponse(m *dminutes.Minutes) MinutesResponse {
	return MinutesResponse{
		ID:           m.ID,
		Title:        m.Title,
		Date:         m.Date,
		Time:         m.Time,
		Venue:        m.Venue,
		Minutes:      m.MinutesText,
		RecordingURL: m.RecordingURL,
		Attendance:   m.Attendance,
		Session:      m.Session,
		Semester:     m.Semester,
		Approved:     m.Approved,
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   m.ApprovedAt,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserResponse is the public shape of a user profile.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      user.Role  `json:"role"`
	Position  string     `json:"position"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Position:  u.Position,
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
