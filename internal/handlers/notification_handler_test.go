package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/pkg/utils"
)

const testJWTSecret = "test-secret"

func newWSAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	handler := &NotificationHandler{jwtSecret: testJWTSecret}

	app := fiber.New()
	app.Use("/api/v1/ws", handler.WebSocketAuth)
	app.Get("/api/v1/ws", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

func upgradeRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestWebSocketAuthRequiresUpgrade(t *testing.T) {
	app := newWSAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

func TestWebSocketAuthRejectsMissingToken(t *testing.T) {
	app := newWSAuthTestApp(t)

	resp, err := app.Test(upgradeRequest("/api/v1/ws"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestWebSocketAuthAcceptsQueryToken(t *testing.T) {
	app := newWSAuthTestApp(t)

	token, err := utils.GenerateToken("42", "member", testJWTSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	resp, err := app.Test(upgradeRequest("/api/v1/ws?token=" + token))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestWebSocketAuthAcceptsBearerHeader(t *testing.T) {
	app := newWSAuthTestApp(t)

	token, err := utils.GenerateToken("7", "coach", testJWTSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := upgradeRequest("/api/v1/ws")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestWebSocketAuthRejectsWrongSecret(t *testing.T) {
	app := newWSAuthTestApp(t)

	token, err := utils.GenerateToken("42", "member", "some-other-secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	resp, err := app.Test(upgradeRequest("/api/v1/ws?token=" + token))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
