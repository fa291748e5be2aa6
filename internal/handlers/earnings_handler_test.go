package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type stubEarningsService struct {
	weeklyResult  *services.WeeklyEarnings
	weeklyErr     error
	monthlyResult *services.MonthlyEarnings
	monthlyErr    error
	lastRef       time.Time
}

func (s *stubEarningsService) Weekly(_ context.Context, ref time.Time) (*services.WeeklyEarnings, error) {
	s.lastRef = ref
	return s.weeklyResult, s.weeklyErr
}

func (s *stubEarningsService) Monthly(_ context.Context, ref time.Time) (*services.MonthlyEarnings, error) {
	s.lastRef = ref
	return s.monthlyResult, s.monthlyErr
}

func newEarningsTestApp(service *stubEarningsService, role string) *fiber.App {
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	handler := &EarningsHandler{
		service: service,
		clock:   payroll.NewClockAt(func() time.Time { return fixed }),
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "1")
		return c.Next()
	})
	app.Get("/api/v1/earnings/weekly", handler.Weekly)
	app.Get("/api/v1/earnings/monthly", handler.Monthly)
	return app
}

func TestWeeklyEarningsUsesSuppliedDate(t *testing.T) {
	service := &stubEarningsService{
		weeklyResult: &services.WeeklyEarnings{
			Coaches: []payroll.CoachTotal{{CoachID: 7, Sessions: 2, Commission: 80}},
		},
	}
	app := newEarningsTestApp(service, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/earnings/weekly?date=2026-06-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// 2026-06-03 parsed as an SGT calendar date.
	want := time.Date(2026, 6, 3, 0, 0, 0, 0, time.FixedZone("SGT", 8*60*60))
	if !service.lastRef.Equal(want) {
		t.Fatalf("expected reference %v, got %v", want, service.lastRef)
	}
}

func TestWeeklyEarningsRejectsMalformedDate(t *testing.T) {
	app := newEarningsTestApp(&stubEarningsService{}, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/earnings/weekly?date=03-06-2026", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWeeklyEarningsForbiddenForCoach(t *testing.T) {
	app := newEarningsTestApp(&stubEarningsService{}, "coach")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/earnings/weekly", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMonthlyEarningsParsesMonth(t *testing.T) {
	service := &stubEarningsService{
		monthlyResult: &services.MonthlyEarnings{MonthsElapsed: 6},
	}
	app := newEarningsTestApp(service, "master_admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/earnings/monthly?month=2026-06", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastRef.Month() != time.June || service.lastRef.Year() != 2026 {
		t.Fatalf("expected June 2026 reference, got %v", service.lastRef)
	}
}

func TestMonthlyEarningsDefaultsToClockNow(t *testing.T) {
	service := &stubEarningsService{
		monthlyResult: &services.MonthlyEarnings{},
	}
	app := newEarningsTestApp(service, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/earnings/monthly", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	want := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if !service.lastRef.Equal(want) {
		t.Fatalf("expected clock now %v, got %v", want, service.lastRef)
	}
}
