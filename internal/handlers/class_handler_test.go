package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
)

type stubClassService struct {
	createResult    *models.ClassDetail
	createErr       error
	listResult      []models.ClassDetail
	listErr         error
	getResult       *models.ClassDetail
	getErr          error
	updateResult    *models.ClassDetail
	updateErr       error
	lastRole        string
	lastClassID     int64
	lastCreateInput services.CreateClassInput
	lastUpdateInput services.UpdateClassInput
}

func (s *stubClassService) CreateClass(_ context.Context, role string, input services.CreateClassInput) (*models.ClassDetail, error) {
	s.lastRole = role
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubClassService) ListClasses(_ context.Context) ([]models.ClassDetail, error) {
	return s.listResult, s.listErr
}

func (s *stubClassService) GetClass(_ context.Context, classID int64) (*models.ClassDetail, error) {
	s.lastClassID = classID
	return s.getResult, s.getErr
}

func (s *stubClassService) UpdateClass(_ context.Context, role string, classID int64, input services.UpdateClassInput) (*models.ClassDetail, error) {
	s.lastRole = role
	s.lastClassID = classID
	s.lastUpdateInput = input
	return s.updateResult, s.updateErr
}

func newClassTestApp(service *stubClassService, role string) *fiber.App {
	handler := &ClassHandler{service: service}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "1")
		return c.Next()
	})
	app.Post("/api/v1/classes", handler.CreateClass)
	app.Get("/api/v1/classes", handler.ListClasses)
	app.Get("/api/v1/classes/:id", handler.GetClass)
	app.Put("/api/v1/classes/:id", handler.UpdateClass)
	return app
}

func TestCreateClassForwardsCoachAssignments(t *testing.T) {
	service := &stubClassService{
		createResult: &models.ClassDetail{
			Class:    models.Class{ID: 12, Name: "Morning HIIT"},
			CoachIDs: []int64{7, 9},
		},
	}
	app := newClassTestApp(service, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classes", strings.NewReader(`{
		"name": "Morning HIIT",
		"day_of_week": 1,
		"start_time": "07:00",
		"end_time": "08:00",
		"capacity": 20,
		"coach_ids": [7, 9]
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
	if len(service.lastCreateInput.CoachIDs) != 2 || service.lastCreateInput.CoachIDs[0] != 7 {
		t.Fatalf("unexpected coach ids: %v", service.lastCreateInput.CoachIDs)
	}

	var body struct {
		Class models.ClassDetail `json:"class"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	lead := body.Class.LeadCoachID()
	if lead == nil || *lead != 7 {
		t.Fatalf("expected lead coach 7, got %v", lead)
	}
}

func TestCreateClassForbiddenForCoach(t *testing.T) {
	service := &stubClassService{createErr: services.ErrForbidden}
	app := newClassTestApp(service, "coach")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classes", strings.NewReader(`{
		"name": "Morning HIIT",
		"day_of_week": 1,
		"start_time": "07:00",
		"end_time": "08:00",
		"capacity": 20,
		"coach_ids": [7]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpdateClassOmittedCoachesKeepsNilSlice(t *testing.T) {
	service := &stubClassService{
		updateResult: &models.ClassDetail{
			Class:    models.Class{ID: 12, Name: "Evening Yoga"},
			CoachIDs: []int64{9},
		},
	}
	app := newClassTestApp(service, "admin")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/classes/12", strings.NewReader(`{"name": "Evening Yoga"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastClassID != 12 {
		t.Fatalf("expected class id 12, got %d", service.lastClassID)
	}
	if service.lastUpdateInput.CoachIDs != nil {
		t.Fatalf("expected nil coach ids when omitted, got %v", service.lastUpdateInput.CoachIDs)
	}
	if service.lastUpdateInput.Name == nil || *service.lastUpdateInput.Name != "Evening Yoga" {
		t.Fatalf("expected name forwarded, got %v", service.lastUpdateInput.Name)
	}
}

func TestGetClassReturnsNotFound(t *testing.T) {
	service := &stubClassService{getErr: pgx.ErrNoRows}
	app := newClassTestApp(service, "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classes/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
