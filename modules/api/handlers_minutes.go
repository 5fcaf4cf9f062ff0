package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	dminutes "github.com/stack-Tech-1/dept-exec-backend/domain/minutes"
	"github.com/stack-Tech-1/dept-exec-backend/modules/minutes"
)

// CreateMinutes handles recording meeting minutes. Administrators only.
func (h *Handlers) CreateMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateMinutesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = parseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid date, expected RFC 3339 or YYYY-MM-DD",
			})
		}
	}

	m, err := h.minutes.Create(c.UserContext(), minutes.CreateInput{
		Title:        req.Title,
		Date:         date,
		Time:         req.Time,
		Venue:        req.Venue,
		MinutesText:  req.Minutes,
		RecordingURL: req.RecordingURL,
		Attendance:   req.Attendance,
		Session:      req.Session,
		Semester:     req.Semester,
	}, p)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toMinutesResponse(m))
}

// ListMinutes returns minutes visible to the caller, optionally filtered by
// session and semester. Executives only ever see approved records.
func (h *Handlers) ListMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	filter := minutes.Filter{
		Session:  c.Query("session"),
		Semester: c.Query("semester"),
	}

	records, err := h.minutes.List(c.UserContext(), filter, p)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]MinutesResponse, 0, len(records))
	for _, m := range records {
		out = append(out, toMinutesResponse(m))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetMinutes returns a single minutes record, subject to visibility rules.
func (h *Handlers) GetMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	m, err := h.minutes.Get(c.UserContext(), c.Params("id"), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toMinutesResponse(m))
}

// UpdateMinutes applies a partial edit to an unapproved record.
func (h *Handlers) UpdateMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateMinutesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	in := minutes.UpdateInput{
		Title:        req.Title,
		Time:         req.Time,
		Venue:        req.Venue,
		MinutesText:  req.Minutes,
		RecordingURL: req.RecordingURL,
		Attendance:   req.Attendance,
		Session:      req.Session,
		Semester:     req.Semester,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid date, expected RFC 3339 or YYYY-MM-DD",
			})
		}
		in.Date = &date
	}

	m, err := h.minutes.Update(c.UserContext(), c.Params("id"), in, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toMinutesResponse(m))
}

// ApproveMinutes approves and permanently locks a minutes record.
func (h *Handlers) ApproveMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	m, err := h.minutes.Approve(c.UserContext(), c.Params("id"), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toMinutesResponse(m))
}

// ExportMinutes renders an approved record as a PDF document.
func (h *Handlers) ExportMinutes(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	id := c.Params("id")
	pdf, err := h.minutes.Export(c.UserContext(), id, p)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "minutes-"+id+".pdf"))
	return c.Status(fiber.StatusOK).Send(pdf)
}

// DeleteMinutes rejects deletion. Minutes records are permanent once written.
func (h *Handlers) DeleteMinutes(c *fiber.Ctx) error {
	if _, ok := principalFrom(c); !ok {
		return unauthenticated(c)
	}
	return respondError(c, dminutes.ErrDeleteRejected)
}
