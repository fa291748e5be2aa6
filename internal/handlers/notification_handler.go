package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
	notifyws "github.com/IsaacYap90/JMT-SuperApp-sub000/internal/websocket"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/pkg/utils"
)

type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
	hub              *notifyws.Hub
	jwtSecret        string
}

func NewNotificationHandler(
	notificationRepo *repository.NotificationRepository,
	hub *notifyws.Hub,
	jwtSecret string,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
		hub:              hub,
		jwtSecret:        jwtSecret,
	}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID, _, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, limit := clampPage(c.QueryInt("page", 1), c.QueryInt("limit", defaultPageLimit))
	unreadOnly := c.QueryBool("unread")

	notifications, err := h.notificationRepo.ListByUser(c.Context(), userID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	total, err := h.notificationRepo.CountByUser(c.Context(), userID, unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"pagination":    buildPaginationMeta(page, limit, total),
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, _, err := actorFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	marked, err := h.notificationRepo.MarkRead(c.Context(), userID, notificationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark notification read"})
	}
	if !marked {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// WebSocketAuth verifies the token before the upgrade. Browsers cannot set
// headers on websocket requests, so the token may also arrive as a query
// parameter.
func (h *NotificationHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *NotificationHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := notifyws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *NotificationHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
