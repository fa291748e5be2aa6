package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type LeaveHandler struct {
	service leaveApplicationService
}

type leaveApplicationService interface {
	RequestLeave(ctx context.Context, actorID int64, role string, input services.RequestLeaveInput) (*models.LeaveRequest, error)
	ListLeave(ctx context.Context, actorID int64, role string, status string) ([]models.LeaveRequest, error)
	ReviewLeave(ctx context.Context, actorID int64, role string, leaveID int64, decision string) (*models.LeaveRequest, error)
}

func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

type requestLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
}

type reviewLeaveRequest struct {
	Decision string `json:"decision"`
}

func (h *LeaveHandler) RequestLeave(c *fiber.Ctx) error {
	actorID, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req requestLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartDate))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	endDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.EndDate))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
	}

	leave, err := h.service.RequestLeave(c.Context(), actorID, role, services.RequestLeaveInput{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      strings.TrimSpace(req.Type),
	})
	if err != nil {
		return mapLeaveError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"leave_request": leave})
}

func (h *LeaveHandler) ListLeave(c *fiber.Ctx) error {
	actorID, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	leaves, err := h.service.ListLeave(c.Context(), actorID, role, strings.TrimSpace(c.Query("status")))
	if err != nil {
		return mapLeaveError(c, err)
	}

	return c.JSON(fiber.Map{"leave_requests": leaves})
}

func (h *LeaveHandler) ReviewLeave(c *fiber.Ctx) error {
	actorID, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	leaveID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid leave request id"})
	}

	var req reviewLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	leave, err := h.service.ReviewLeave(c.Context(), actorID, role, leaveID, strings.TrimSpace(req.Decision))
	if err != nil {
		return mapLeaveError(c, err)
	}

	return c.JSON(fiber.Map{"leave_request": leave})
}

func mapLeaveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Leave request already reviewed"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process leave request"})
	}
}
