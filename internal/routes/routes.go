package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/config"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/handlers"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/middleware"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/services"
	notifyws "github.com/IsaacYap90/JMT-SuperApp-sub000/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	rateRepo := repository.NewRateRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	classRepo := repository.NewClassRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	clock := payroll.NewClock()

	hub := notifyws.NewHub()
	go hub.Run()

	sessionService := services.NewSessionService(db, sessionRepo, rateRepo, userRepo, hub)
	earningsService := services.NewEarningsService(sessionRepo, clock)
	classService := services.NewClassService(db, classRepo, hub)
	leaveService := services.NewLeaveService(db, leaveRepo, hub)

	authHandler := handlers.NewAuthHandler(db, userRepo, rateRepo, cfg.JWTSecret)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	earningsHandler := handlers.NewEarningsHandler(earningsService, clock)
	classHandler := handlers.NewClassHandler(classService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	ratesHandler := handlers.NewRatesHandler(rateRepo, userRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, hub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	admin := authProtected.Group("/admin")
	admin.Post("/users", authHandler.CreateUser)

	sessions := authProtected.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Post("/recurring", sessionHandler.CreateRecurringSessions)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Put("/:id/status", sessionHandler.UpdateStatus)
	sessions.Put("/:id/verify", sessionHandler.VerifySession)
	sessions.Put("/:id/approve-payment", sessionHandler.ApprovePayment)
	sessions.Delete("/:id", sessionHandler.DeleteSession)

	earnings := authProtected.Group("/earnings")
	earnings.Get("/weekly", earningsHandler.Weekly)
	earnings.Get("/monthly", earningsHandler.Monthly)

	classes := authProtected.Group("/classes")
	classes.Post("", classHandler.CreateClass)
	classes.Get("", classHandler.ListClasses)
	classes.Get("/:id", classHandler.GetClass)
	classes.Put("/:id", classHandler.UpdateClass)

	leave := authProtected.Group("/leave")
	leave.Post("", leaveHandler.RequestLeave)
	leave.Get("", leaveHandler.ListLeave)
	leave.Put("/:id/review", leaveHandler.ReviewLeave)

	coaches := authProtected.Group("/coaches")
	coaches.Get("/:id/rates", ratesHandler.GetRates)
	coaches.Put("/:id/rates", ratesHandler.UpdateRates)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.ListNotifications)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	api.Use("/v1/ws", notificationHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(notificationHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
