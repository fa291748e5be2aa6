package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type stubLeaveService struct {
	requestResult *models.LeaveRequest
	requestErr    error
	listResult    []models.LeaveRequest
	listErr       error
	reviewResult  *models.LeaveRequest
	reviewErr     error
	lastInput     services.RequestLeaveInput
	lastActorID   int64
	lastRole      string
	lastLeaveID   int64
	lastDecision  string
	lastStatus    string
}

func (s *stubLeaveService) RequestLeave(_ context.Context, actorID int64, role string, input services.RequestLeaveInput) (*models.LeaveRequest, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastInput = input
	return s.requestResult, s.requestErr
}

func (s *stubLeaveService) ListLeave(_ context.Context, actorID int64, role string, status string) ([]models.LeaveRequest, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastStatus = status
	return s.listResult, s.listErr
}

func (s *stubLeaveService) ReviewLeave(_ context.Context, actorID int64, role string, leaveID int64, decision string) (*models.LeaveRequest, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastLeaveID = leaveID
	s.lastDecision = decision
	return s.reviewResult, s.reviewErr
}

func newLeaveTestApp(service *stubLeaveService, role, userID string) *fiber.App {
	handler := &LeaveHandler{service: service}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Post("/api/v1/leave", handler.RequestLeave)
	app.Get("/api/v1/leave", handler.ListLeave)
	app.Put("/api/v1/leave/:id/review", handler.ReviewLeave)
	return app
}

func TestRequestLeaveParsesDates(t *testing.T) {
	service := &stubLeaveService{
		requestResult: &models.LeaveRequest{ID: 4, CoachID: 7, Status: "pending"},
	}
	app := newLeaveTestApp(service, "coach", "7")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave", strings.NewReader(`{
		"start_date": "2026-09-10",
		"end_date": "2026-09-12",
		"type": "annual"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	wantStart := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if !service.lastInput.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, service.lastInput.StartDate)
	}
	if service.lastInput.Type != "annual" {
		t.Fatalf("expected annual, got %q", service.lastInput.Type)
	}
}

func TestRequestLeaveRejectsMalformedDate(t *testing.T) {
	app := newLeaveTestApp(&stubLeaveService{}, "coach", "7")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave", strings.NewReader(`{
		"start_date": "next tuesday",
		"end_date": "2026-09-12",
		"type": "annual"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListLeavePassesStatusFilter(t *testing.T) {
	service := &stubLeaveService{
		listResult: []models.LeaveRequest{{ID: 1, Status: "pending"}},
	}
	app := newLeaveTestApp(service, "admin", "2")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leave?status=pending", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastStatus != "pending" {
		t.Fatalf("expected pending filter, got %q", service.lastStatus)
	}
}

func TestReviewLeaveForwardsDecision(t *testing.T) {
	service := &stubLeaveService{
		reviewResult: &models.LeaveRequest{ID: 4, Status: "approved"},
	}
	app := newLeaveTestApp(service, "admin", "2")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave/4/review", strings.NewReader(`{"decision":"approved"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastLeaveID != 4 || service.lastDecision != "approved" {
		t.Fatalf("unexpected review call: id %d decision %q", service.lastLeaveID, service.lastDecision)
	}
}

func TestReviewLeaveReturnsUnprocessableWhenAlreadyReviewed(t *testing.T) {
	service := &stubLeaveService{reviewErr: services.ErrInvalidStateTransition}
	app := newLeaveTestApp(service, "admin", "2")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave/4/review", strings.NewReader(`{"decision":"rejected"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestReviewLeaveReturnsNotFound(t *testing.T) {
	service := &stubLeaveService{reviewErr: pgx.ErrNoRows}
	app := newLeaveTestApp(service, "admin", "2")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave/99/review", strings.NewReader(`{"decision":"approved"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
