package minutes

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Minutes{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedMinutes(t *testing.T, db *gorm.DB) *domain.Minutes {
	t.Helper()

	m := domain.New("Weekly Sync", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "Agenda items discussed.", "admin-1")
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed minutes: %v", err)
	}
	return m
}

func TestRepositorySaveUpdatesUnapprovedRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	m := seedMinutes(t, db)

	m.Title = "Weekly Sync (edited)"
	m.Venue = "Seminar Room B"
	m.UpdatedAt = time.Now()

	if err := repo.Save(m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Title != "Weekly Sync (edited)" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if got.Venue != "Seminar Room B" {
		t.Errorf("expected updated venue, got %q", got.Venue)
	}
}

func TestRepositorySaveMissingRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	m := domain.New("Ghost", time.Now(), "Never persisted.", "admin-1")
	if err := repo.Save(m); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositorySaveCannotRevertApproval(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	m := seedMinutes(t, db)

	// First writer reads the record while it is still a draft.
	stale, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	// A second administrator approves before the edit lands.
	approving, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	approving.Approve("admin-2", time.Now())
	if err := repo.MarkApproved(approving); err != nil {
		t.Fatalf("MarkApproved() error = %v", err)
	}

	stale.Title = "Weekly Sync (edited)"
	stale.UpdatedAt = time.Now()
	if err := repo.Save(stale); !errors.Is(err, domain.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	got, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !got.Approved {
		t.Error("approval flag was reverted by the stale write")
	}
	if got.ApprovedBy != "admin-2" {
		t.Errorf("expected approver admin-2, got %q", got.ApprovedBy)
	}
	if got.ApprovedAt == nil {
		t.Error("expected approval timestamp to survive the stale write")
	}
	if got.Title != "Weekly Sync" {
		t.Errorf("expected title unchanged after rejected write, got %q", got.Title)
	}
}

func TestRepositoryMarkApprovedOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	m := seedMinutes(t, db)

	first, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	second, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	first.Approve("admin-2", time.Now())
	if err := repo.MarkApproved(first); err != nil {
		t.Fatalf("MarkApproved() error = %v", err)
	}

	second.Approve("admin-3", time.Now())
	if err := repo.MarkApproved(second); !errors.Is(err, domain.ErrAlreadyApproved) {
		t.Errorf("expected ErrAlreadyApproved, got %v", err)
	}

	got, err := repo.FindByID(m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.ApprovedBy != "admin-2" {
		t.Errorf("expected first approver to win, got %q", got.ApprovedBy)
	}
}
