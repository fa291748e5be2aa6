package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type ClassHandler struct {
	service classApplicationService
}

type classApplicationService interface {
	CreateClass(ctx context.Context, role string, input services.CreateClassInput) (*models.ClassDetail, error)
	ListClasses(ctx context.Context) ([]models.ClassDetail, error)
	GetClass(ctx context.Context, classID int64) (*models.ClassDetail, error)
	UpdateClass(ctx context.Context, role string, classID int64, input services.UpdateClassInput) (*models.ClassDetail, error)
}

func NewClassHandler(service *services.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

type createClassRequest struct {
	Name      string  `json:"name"`
	DayOfWeek int     `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Capacity  int     `json:"capacity"`
	CoachIDs  []int64 `json:"coach_ids"`
}

type updateClassRequest struct {
	Name      *string `json:"name"`
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Capacity  *int    `json:"capacity"`
	CoachIDs  []int64 `json:"coach_ids"`
}

func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	_, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	class, err := h.service.CreateClass(c.Context(), role, services.CreateClassInput{
		Name:      req.Name,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  req.Capacity,
		CoachIDs:  req.CoachIDs,
	})
	if err != nil {
		return mapClassError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": class})
}

func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	classes, err := h.service.ListClasses(c.Context())
	if err != nil {
		return mapClassError(c, err)
	}
	return c.JSON(fiber.Map{"classes": classes})
}

func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	class, err := h.service.GetClass(c.Context(), classID)
	if err != nil {
		return mapClassError(c, err)
	}
	return c.JSON(fiber.Map{"class": class})
}

func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	_, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	classID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var req updateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	class, err := h.service.UpdateClass(c.Context(), role, classID, services.UpdateClassInput{
		Name:      req.Name,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  req.Capacity,
		CoachIDs:  req.CoachIDs,
	})
	if err != nil {
		return mapClassError(c, err)
	}

	return c.JSON(fiber.Map{"class": class})
}

func mapClassError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process class request"})
	}
}
