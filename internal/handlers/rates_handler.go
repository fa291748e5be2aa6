package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
)

type RatesHandler struct {
	rateRepo *repository.RateRepository
	userRepo *repository.UserRepository
}

func NewRatesHandler(rateRepo *repository.RateRepository, userRepo *repository.UserRepository) *RatesHandler {
	return &RatesHandler{rateRepo: rateRepo, userRepo: userRepo}
}

type updateRatesRequest struct {
	SoloRate           *float64 `json:"solo_rate"`
	BuddyRate          *float64 `json:"buddy_rate"`
	HouseCallRate      *float64 `json:"house_call_rate"`
	CommissionFraction *float64 `json:"commission_fraction"`
}

// GetRates returns the stored rate card alongside the effective values that
// payroll will actually use, so unset fields show their fallbacks.
func (h *RatesHandler) GetRates(c *fiber.Ctx) error {
	actorID, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	coachID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}
	if !models.IsAdminRole(role) && actorID != coachID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	cfg, err := h.rateRepo.GetByCoachID(c.Context(), coachID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch rates"})
	}

	effective := payroll.ResolveRates(cfg)
	return c.JSON(fiber.Map{
		"rates": cfg,
		"effective": fiber.Map{
			"solo_rate":           effective.Solo,
			"buddy_rate":          effective.Buddy,
			"house_call_rate":     effective.HouseCall,
			"commission_fraction": effective.CommissionFraction,
		},
	})
}

func (h *RatesHandler) UpdateRates(c *fiber.Ctx) error {
	_, role, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if !models.IsAdminRole(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	coachID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	var req updateRatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	for _, rate := range []*float64{req.SoloRate, req.BuddyRate, req.HouseCallRate} {
		if rate != nil && *rate < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rates must not be negative"})
		}
	}
	if req.CommissionFraction != nil && (*req.CommissionFraction < 0 || *req.CommissionFraction > 1) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "commission_fraction must be between 0 and 1"})
	}

	coach, err := h.userRepo.GetByID(c.Context(), coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coach"})
	}
	if coach.Role != models.RoleCoach {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
	}

	cfg, err := h.rateRepo.Upsert(c.Context(), coachID, repository.UpdateRatesInput{
		SoloRate:           req.SoloRate,
		BuddyRate:          req.BuddyRate,
		HouseCallRate:      req.HouseCallRate,
		CommissionFraction: req.CommissionFraction,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update rates"})
	}

	return c.JSON(fiber.Map{"rates": cfg})
}
