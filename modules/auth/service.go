package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrInactiveUser is returned when a deactivated account logs in.
	ErrInactiveUser = errors.New("account is deactivated")
	// ErrAdminsOnly is returned when a non-administrator sends an invite.
	ErrAdminsOnly = errors.New("admins only")
	// ErrNameRequired is returned when registration omits the name.
	ErrNameRequired = errors.New("name is required")
)

// InviteTTL is how long an invitation stays valid.
const InviteTTL = 24 * time.Hour

// Mailer delivers invitation emails. Failures are logged, not returned: the
// invite record is the source of truth and the token can be re-sent.
type Mailer interface {
	Send(to, subject, body string) error
}

// Service handles onboarding and authentication.
type Service struct {
	users   *UserRepository
	invites *InviteRepository
	hasher  *PasswordHasher
	jwt     *JWTManager
	mailer  Mailer
	baseURL string
}

// NewService creates a new auth Service. baseURL is the frontend address used
// in invitation links.
func NewService(users *UserRepository, invites *InviteRepository, hasher *PasswordHasher, jwt *JWTManager, mailer Mailer, baseURL string) *Service {
	return &Service{
		users:   users,
		invites: invites,
		hasher:  hasher,
		jwt:     jwt,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// Invite issues a single-use invitation for the email. Administrators only.
func (s *Service) Invite(_ context.Context, email string, role user.Role, inviter user.Principal) (*user.Invite, error) {
	if !inviter.IsAdmin() {
		return nil, ErrAdminsOnly
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if role == "" {
		role = user.RoleExec
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	token, err := NewInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &user.Invite{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		Token:     token,
		ExpiresAt: time.Now().Add(InviteTTL),
		InvitedBy: inviter.ID,
	}
	if err := s.invites.Create(inv); err != nil {
		return nil, err
	}

	s.sendInviteEmail(inv)
	log.Printf("[auth] Invite sent to %s (role %s) by %s", email, role, inviter.ID)
	return inv, nil
}

func (s *Service) sendInviteEmail(inv *user.Invite) {
	link := fmt.Sprintf("%s/register?token=%s", s.baseURL, inv.Token)
	body := fmt.Sprintf(
		"Dear Executive,\n\nYou have been invited to join the Department Executive System.\n\nPlease use the link below to complete your registration:\n%s\n\nRole: %s\nLink expires in: 24 hours\n\nThis is a secure, invite-only system for department leadership.\n\nBest regards,\nDepartment Executive System\n",
		link, inv.Role,
	)
	if err := s.mailer.Send(inv.Email, "Invitation to Department Executive System", body); err != nil {
		log.Printf("[auth] Invite email to %s failed: %v", inv.Email, err)
	}
}

// RegisterWithInvite consumes an invite token and creates the account.
func (s *Service) RegisterWithInvite(_ context.Context, token, name, password, position string) (*user.User, error) {
	if token == "" {
		return nil, ErrInviteNotFound
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	inv, err := s.invites.FindUsableByToken(token, time.Now())
	if err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(inv.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		// Burn the invite so the token cannot be probed further.
		if err := s.invites.MarkUsed(inv.ID); err != nil {
			log.Printf("[auth] Failed to mark invite %s used: %v", inv.ID, err)
		}
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if position == "" {
		position = user.DefaultPosition
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        inv.Email,
		PasswordHash: passwordHash,
		Role:         inv.Role,
		Position:     position,
		Active:       true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}

	if err := s.invites.MarkUsed(inv.ID); err != nil {
		return nil, err
	}

	log.Printf("[auth] User registered: %s (%s)", u.Email, u.Role)
	return u, nil
}

// Login authenticates a user and returns an access token.
func (s *Service) Login(_ context.Context, email, password string) (*user.TokenPair, *user.User, error) {
	u, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, nil, ErrInactiveUser
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now()
	if err := s.users.SetLastLogin(u.ID, now); err != nil {
		log.Printf("[auth] Failed to record last login for %s: %v", u.ID, err)
	}
	u.LastLogin = &now

	return &user.TokenPair{
		AccessToken: token,
		ExpiresIn:   s.jwt.AccessTokenDuration(),
		TokenType:   "Bearer",
	}, u, nil
}

// ValidateToken validates an access token and returns the identity claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*user.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &user.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(_ context.Context, userID string) (*user.User, error) {
	return s.users.FindByID(userID)
}

// ListUsers returns every account, for the admin roster view.
func (s *Service) ListUsers(_ context.Context) ([]*user.User, error) {
	return s.users.FindAll()
}
