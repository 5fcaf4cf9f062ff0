package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	dtask "github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/modules/task"
)

// CreateTask handles creating a task. Administrators only.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid due_date, expected RFC 3339 or YYYY-MM-DD",
		})
	}

	priority := dtask.Priority(req.Priority)
	if req.Priority == "" {
		priority = dtask.PriorityMedium
	}

	t, err := h.tasks.Create(c.UserContext(), task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     dueDate,
		Priority:    priority,
	}, p)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(t))
}

// ListTasks returns tasks visible to the caller. Administrators see every
// task; executives see only tasks assigned to them.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	tasks, err := h.tasks.List(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetTask returns a single task, subject to ownership rules.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	t, err := h.tasks.Get(c.UserContext(), c.Params("id"), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toTaskResponse(t))
}

// UpdateTaskStatus advances a task through its lifecycle.
func (h *Handlers) UpdateTaskStatus(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Status is required",
		})
	}

	t, err := h.tasks.UpdateStatus(c.UserContext(), c.Params("id"), dtask.Status(req.Status), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toTaskResponse(t))
}

// parseDate accepts RFC 3339 timestamps and bare calendar dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
