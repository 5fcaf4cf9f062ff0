package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// Module provides onboarding and authentication services.
type Module struct {
	db      *gorm.DB
	mailer  Mailer
	users   *UserRepository
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)

// NewModule creates a new auth Module. The user repository is built here so
// other modules can take it as their user directory before the app starts.
func NewModule(db *gorm.DB, mailer Mailer) *Module {
	return &Module{
		db:     db,
		mailer: mailer,
		users:  NewUserRepository(db),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "auth"
}

// Init wires the invite repository and service.
func (m *Module) Init(_ mono.ServiceContainer) error {
	invites := NewInviteRepository(m.db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	m.service = NewService(m.users, invites, hasher, jwtManager, m.mailer, baseURL)
	log.Println("[auth] Module initialized")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[auth] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "invite", json.Unmarshal, json.Marshal, m.handleInvite,
	); err != nil {
		return fmt.Errorf("failed to register invite service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "register", json.Unmarshal, json.Marshal, m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-users", json.Unmarshal, json.Marshal, m.handleListUsers,
	); err != nil {
		return fmt.Errorf("failed to register list-users service: %w", err)
	}

	log.Printf("[auth] Registered services: invite, register, login, validate-token, get-user, list-users")
	return nil
}

// handleInvite handles invitation requests from other modules.
func (m *Module) handleInvite(ctx context.Context, req InviteRequest, _ *mono.Msg) (InviteResponse, error) {
	inv, err := m.service.Invite(ctx, req.Email, req.Role, user.Principal{ID: req.InvitedBy, Role: req.InviterRole})
	if err != nil {
		return InviteResponse{}, err
	}
	return InviteResponse{
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// handleRegister handles invite-based registration.
func (m *Module) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	u, err := m.service.RegisterWithInvite(ctx, req.Token, req.Name, req.Password, req.Position)
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

// handleLogin handles user login.
func (m *Module) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, u, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		TokenType:   tokens.TokenType,
		UserID:      u.ID,
		Name:        u.Name,
		Role:        u.Role,
	}, nil
}

// handleValidateToken handles token validation.
func (m *Module) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if err == ErrExpiredToken {
			errMsg = "token expired"
		}
		// Return response, not error, for validation failures
		return ValidateTokenResponse{Valid: false, Error: errMsg}, nil
	}
	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// handleGetUser handles get user requests.
func (m *Module) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	u, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}
	return GetUserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Position:  u.Position,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}, nil
}

// handleListUsers returns the full account roster for administrators.
func (m *Module) handleListUsers(ctx context.Context, req ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	if req.RequesterRole != user.RoleAdmin {
		return ListUsersResponse{}, ErrAdminsOnly
	}
	users, err := m.service.ListUsers(ctx)
	if err != nil {
		return ListUsersResponse{}, err
	}
	resp := ListUsersResponse{Users: make([]GetUserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, GetUserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			Position:  u.Position,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	return resp, nil
}

// GetService returns the auth service for direct in-process use.
func (m *Module) GetService() *Service {
	return m.service
}

// GetUserRepository returns the user repository, shared as the user directory
// with the task, minutes, and notifier modules.
func (m *Module) GetUserRepository() *UserRepository {
	return m.users
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}
