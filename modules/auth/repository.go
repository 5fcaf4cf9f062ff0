package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a user already exists.
	ErrUserExists = errors.New("user with this email already exists")
	// ErrInviteNotFound is returned for a missing, used, or expired invite.
	ErrInviteNotFound = errors.New("invalid, expired, or already used invitation token")
)

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user in the database.
func (r *UserRepository) Create(u *user.User) error {
	result := r.db.Create(u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(id string) (*user.User, error) {
	var u user.User
	result := r.db.First(&u, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(email string) (*user.User, error) {
	var u user.User
	result := r.db.First(&u, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

// EmailExists checks if a user with the given email exists.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&user.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindAll returns every user, newest first.
func (r *UserRepository) FindAll() ([]*user.User, error) {
	var users []*user.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// SetLastLogin records a successful login.
func (r *UserRepository) SetLastLogin(id string, at time.Time) error {
	return r.db.Model(&user.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// InviteRepository handles invite persistence using GORM.
type InviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create saves a new invite.
func (r *InviteRepository) Create(inv *user.Invite) error {
	if err := r.db.Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

// FindUsableByToken returns the invite for the token if it is unused and not
// expired.
func (r *InviteRepository) FindUsableByToken(token string, now time.Time) (*user.Invite, error) {
	var inv user.Invite
	result := r.db.First(&inv, "token = ? AND used = ? AND expires_at > ?", token, false, now)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, result.Error
	}
	return &inv, nil
}

// MarkUsed consumes the invite. The guard on used=false makes consumption
// exactly-once even with concurrent registration attempts.
func (r *InviteRepository) MarkUsed(id string) error {
	result := r.db.Model(&user.Invite{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}
	return nil
}
