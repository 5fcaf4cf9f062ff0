package auth

import (
	"time"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// InviteRequest represents an invitation request.
type InviteRequest struct {
	Email       string    `json:"email"`
	Role        user.Role `json:"role"`
	InvitedBy   string    `json:"invited_by"`
	InviterRole user.Role `json:"inviter_role"`
}

// InviteResponse represents an invitation response.
type InviteResponse struct {
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest represents an invite-based registration request.
type RegisterRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Position string `json:"position,omitempty"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a user login response with the issued token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	TokenType   string    `json:"token_type"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Role        user.Role `json:"role"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid  bool      `json:"valid"`
	UserID string    `json:"user_id,omitempty"`
	Email  string    `json:"email,omitempty"`
	Role   user.Role `json:"role,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// ListUsersRequest represents a request for the full account roster.
type ListUsersRequest struct {
	RequesterRole user.Role `json:"requester_role"`
}

// ListUsersResponse represents the full account roster.
type ListUsersResponse struct {
	Users []GetUserResponse `json:"users"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	Position  string    `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
