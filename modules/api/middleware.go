package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
	"github.com/stack-Tech-1/dept-exec-backend/modules/auth"
)

const (
	// PrincipalContextKey is the key used to store the caller principal in the
	// Fiber context.
	PrincipalContextKey = "principal"
)

// AuthMiddleware creates a middleware that validates JWT tokens and stores the
// resolved principal in the request context.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		// Check Bearer prefix
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		// Extract token
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		// Validate token
		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		// Store the principal in context for use in handlers
		c.Locals(PrincipalContextKey, user.Principal{
			ID:   claims.UserID,
			Role: claims.Role,
		})

		return c.Next()
	}
}

// RequireRoles creates a middleware that rejects callers whose role is not in
// the allowed set. It must run after AuthMiddleware.
func RequireRoles(roles ...user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := c.Locals(PrincipalContextKey).(user.Principal)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication required",
			})
		}
		for _, role := range roles {
			if p.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "Insufficient role for this operation",
		})
	}
}

// principalFrom extracts the authenticated principal from the request context.
func principalFrom(c *fiber.Ctx) (user.Principal, bool) {
	p, ok := c.Locals(PrincipalContextKey).(user.Principal)
	return p, ok
}
