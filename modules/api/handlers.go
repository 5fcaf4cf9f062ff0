package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
	"github.com/stack-Tech-1/dept-exec-backend/modules/auth"
	"github.com/stack-Tech-1/dept-exec-backend/modules/minutes"
	"github.com/stack-Tech-1/dept-exec-backend/modules/notifier"
	"github.com/stack-Tech-1/dept-exec-backend/modules/task"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	tasks         *task.Service
	minutes       *minutes.Service
	notifications notifier.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authContainer mono.ServiceContainer,
	authAdapter auth.AuthPort,
	tasks *task.Service,
	minutesService *minutes.Service,
	notifications notifier.Store,
) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		tasks:         tasks,
		minutes:       minutesService,
		notifications: notifications,
	}
}

// Invite handles sending a registration invitation. Administrators only.
func (h *Handlers) Invite(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		Email string    `json:"email"`
		Role  user.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email is required",
		})
	}

	authReq := auth.InviteRequest{
		Email:       req.Email,
		Role:        req.Role,
		InvitedBy:   p.ID,
		InviterRole: p.Role,
	}
	var resp auth.InviteResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"invite",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Register handles invite-based registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Token == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invitation token and password are required",
		})
	}

	var resp auth.RegisterResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email and password are required",
		})
	}

	var resp auth.LoginResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Profile handles getting the current user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	u, err := h.authAdapter.GetUser(c.UserContext(), p.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(toUserResponse(u))
}

// ListUsers returns the full account roster. Administrators only.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := auth.ListUsersRequest{RequesterRole: p.Role}
	var resp auth.ListUsersResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"list-users",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// handleAuthError maps errors surfaced through the service container onto
// HTTP responses. Container calls flatten sentinel errors into strings, so
// known messages are matched textually without exposing internals.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, auth.ErrInvalidCredentials.Error()):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, auth.ErrInactiveUser.Error()):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "Account is deactivated",
		})
	case strings.Contains(errStr, auth.ErrAdminsOnly.Error()):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "Administrator role required",
		})
	case strings.Contains(errStr, auth.ErrUserExists.Error()):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, auth.ErrInviteNotFound.Error()):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid, expired, or already used invitation token",
		})
	case strings.Contains(errStr, auth.ErrInvalidEmail.Error()):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid email format",
		})
	case strings.Contains(errStr, auth.ErrWeakPassword.Error()):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at least 8 characters",
		})
	case strings.Contains(errStr, auth.ErrPasswordTooLong.Error()):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at most 72 characters",
		})
	case strings.Contains(errStr, auth.ErrNameRequired.Error()):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Name is required",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: "Invalid request body",
	})
}
