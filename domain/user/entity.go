// Package user provides the user and invite entities shared across modules.
package user

import (
	"time"
)

// Role determines what a user may do in the system.
type Role string

const (
	// RoleAdmin is the administrator role.
	RoleAdmin Role = "ADMIN"
	// RoleExec is the executive member role.
	RoleExec Role = "EXEC"
)

// IsValid returns true if the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleExec
}

// Positions lists the executive positions a user may hold.
var Positions = []string{
	"President",
	"Vice President",
	"General Secretary",
	"Assistant General Secretary",
	"Treasurer",
	"Public Relations Officer",
	"Sports Director",
	"Assistant Sports Director",
	"Social Director",
	"Financial Secretary",
	"Executive Member",
}

// DefaultPosition is assigned when no position is specified.
const DefaultPosition = "Executive Member"

// User represents a department executive account.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	Role         Role   `gorm:"not null;type:text"`
	Position     string `gorm:"type:text"`
	Active       bool   `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Invite is a single-use, expiring token that lets someone create an account.
type Invite struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Email     string    `gorm:"index;not null;type:text"`
	Role      Role      `gorm:"not null;type:text"`
	Token     string    `gorm:"uniqueIndex;not null;type:text"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	InvitedBy string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the Invite entity.
func (Invite) TableName() string {
	return "invites"
}

// Usable reports whether the invite can still be consumed.
func (i *Invite) Usable(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}

// Principal is the authenticated actor performing an operation.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin returns true if the principal has the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Claims represents the identity carried inside a JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// TokenPair represents an issued access token.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
