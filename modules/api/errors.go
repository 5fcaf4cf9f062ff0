package api

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	dminutes "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
	dtask "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/modules/auth"
)

// ErrorResponse is the structured error body for every failed request.
type ErrorResponse struct {
	Error              string         `json:"error"`
	Message            string         `json:"message"`
	AllowedTransitions []dtask.Status `json:"allowed_transitions,omitempty"`
	Detail             string         `json:"detail,omitempty"`
}

// devMode reports whether full diagnostic detail may be echoed to clients.
func devMode() bool {
	return os.Getenv("APP_ENV") == "development"
}

// respondError maps a domain error onto the HTTP taxonomy. Unknown errors are
// logged and returned as a generic 500 with no internal detail, unless the
// process runs in development mode.
func respondError(c *fiber.Ctx, err error) error {
	var transition *dtask.InvalidTransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:              "invalid_transition",
			Message:            transition.Error(),
			AllowedTransitions: transition.Allowed,
		})
	}

	switch {
	case errors.Is(err, dtask.ErrNotFound),
		errors.Is(err, dminutes.ErrNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return status(c, fiber.StatusNotFound, "not_found", err)

	case errors.Is(err, dtask.ErrNotOwner),
		errors.Is(err, dtask.ErrStatusReserved),
		errors.Is(err, dminutes.ErrAdminsOnly),
		errors.Is(err, dminutes.ErrLocked),
		errors.Is(err, dminutes.ErrSelfApproval),
		errors.Is(err, dminutes.ErrNotApproved),
		errors.Is(err, dminutes.ErrDeleteRejected),
		errors.Is(err, auth.ErrAdminsOnly),
		errors.Is(err, auth.ErrInactiveUser):
		return status(c, fiber.StatusForbidden, "forbidden", err)

	case errors.Is(err, dminutes.ErrAlreadyApproved),
		errors.Is(err, dtask.ErrStale),
		errors.Is(err, auth.ErrUserExists):
		return status(c, fiber.StatusConflict, "conflict", err)

	case errors.Is(err, dtask.ErrCompleted),
		errors.Is(err, dminutes.ErrExportUnapproved):
		return status(c, fiber.StatusBadRequest, "invalid_state", err)

	case errors.Is(err, dtask.ErrMissingFields),
		errors.Is(err, dtask.ErrInvalidStatus),
		errors.Is(err, dtask.ErrInvalidPriority),
		errors.Is(err, dminutes.ErrMissingFields),
		errors.Is(err, dminutes.ErrInvalidAttendance),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, auth.ErrInviteNotFound):
		return status(c, fiber.StatusBadRequest, "bad_request", err)

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return status(c, fiber.StatusUnauthorized, "unauthorized", err)
	}

	log.Printf("[api] Internal error: %v", err)
	resp := ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}
	if devMode() {
		resp.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

func status(c *fiber.Ctx, code int, kind string, err error) error {
	return c.Status(code).JSON(ErrorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}
