package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type EarningsHandler struct {
	service earningsApplicationService
	clock   *payroll.Clock
}

type earningsApplicationService interface {
	Weekly(ctx context.Context, ref time.Time) (*services.WeeklyEarnings, error)
	Monthly(ctx context.Context, ref time.Time) (*services.MonthlyEarnings, error)
}

func NewEarningsHandler(service *services.EarningsService, clock *payroll.Clock) *EarningsHandler {
	return &EarningsHandler{service: service, clock: clock}
}

// Weekly serves per-coach commission totals for the SGT week containing the
// optional date query parameter, defaulting to the current week.
func (h *EarningsHandler) Weekly(c *fiber.Ctx) error {
	_, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if !models.IsAdminRole(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	ref := h.clock.Now()
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, h.clock.Location())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		ref = parsed
	}

	earnings, err := h.service.Weekly(c.Context(), ref)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute weekly earnings"})
	}

	return c.JSON(fiber.Map{"earnings": earnings})
}

// Monthly serves per-coach totals for the SGT month named by the optional
// month query parameter (YYYY-MM), with the projected year-to-date figure.
func (h *EarningsHandler) Monthly(c *fiber.Ctx) error {
	_, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if !models.IsAdminRole(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	ref := h.clock.Now()
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, h.clock.Location())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be YYYY-MM"})
		}
		ref = parsed
	}

	earnings, err := h.service.Monthly(c.Context(), ref)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute monthly earnings"})
	}

	return c.JSON(fiber.Map{"earnings": earnings})
}
