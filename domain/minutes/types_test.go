package minutes

import (
	"errors"
	"testing"
	"time"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

func TestAttendeeDisplay(t *testing.T) {
	a := Attendee{Name: "Precious Adetipe", Role: "ADMIN"}
	want := "Precious Adetipe (ADMIN)"
	if got := a.Display(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestNormalizeAttendance(t *testing.T) {
	got, err := NormalizeAttendance([]Attendee{
		{Name: "Ada", Role: "ADMIN"},
		{Name: "Eve", Role: "EXEC"},
	})
	if err != nil {
		t.Fatalf("NormalizeAttendance() error = %v", err)
	}
	want := []string{"Ada (ADMIN)", "Eve (EXEC)"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeAttendanceRejectsMissingName(t *testing.T) {
	_, err := NormalizeAttendance([]Attendee{{Name: "", Role: "EXEC"}})
	if !errors.Is(err, ErrInvalidAttendance) {
		t.Errorf("NormalizeAttendance() error = %v, want ErrInvalidAttendance", err)
	}
}

func TestNewFillsDefaults(t *testing.T) {
	date := time.Now()
	m := New("Weekly sync", date, "Discussed the budget.", "admin-1")

	if m.ID == "" {
		t.Error("expected a generated ID")
	}
	if m.Approved {
		t.Error("new record must start unapproved")
	}
	if m.Venue != DefaultVenue {
		t.Errorf("venue = %q, want %q", m.Venue, DefaultVenue)
	}
	if m.Time != DefaultTime {
		t.Errorf("time = %q, want %q", m.Time, DefaultTime)
	}
	if m.Session != DefaultSession {
		t.Errorf("session = %q, want %q", m.Session, DefaultSession)
	}
	if m.Semester != DefaultSemester {
		t.Errorf("semester = %q, want %q", m.Semester, DefaultSemester)
	}
}

func TestApprove(t *testing.T) {
	m := New("Weekly sync", time.Now(), "Text", "admin-1")
	at := time.Now()

	m.Approve("admin-2", at)

	if !m.Approved {
		t.Error("expected record to be approved")
	}
	if m.ApprovedBy != "admin-2" {
		t.Errorf("ApprovedBy = %q, want admin-2", m.ApprovedBy)
	}
	if m.ApprovedAt == nil || !m.ApprovedAt.Equal(at) {
		t.Errorf("ApprovedAt = %v, want %v", m.ApprovedAt, at)
	}
}

func TestVisibleTo(t *testing.T) {
	unapproved := New("Draft", time.Now(), "Text", "admin-1")
	approved := New("Final", time.Now(), "Text", "admin-1")
	approved.Approve("admin-2", time.Now())

	tests := []struct {
		name   string
		record *Minutes
		role   user.Role
		want   bool
	}{
		{name: "admin sees unapproved", record: unapproved, role: user.RoleAdmin, want: true},
		{name: "admin sees approved", record: approved, role: user.RoleAdmin, want: true},
		{name: "exec blocked from unapproved", record: unapproved, role: user.RoleExec, want: false},
		{name: "exec sees approved", record: approved, role: user.RoleExec, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.VisibleTo(tt.role); got != tt.want {
				t.Errorf("VisibleTo(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}
