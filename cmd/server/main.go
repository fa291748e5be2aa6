package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/config"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/database"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/routes"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	if err := seedMasterAdmin(cfg, database.DB); err != nil {
		log.Fatalf("Failed to seed master admin: %v", err)
	}

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 4. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// seedMasterAdmin bootstraps the first master admin account from env config
// so a fresh deployment can log in. Does nothing when the account exists or
// no credentials are configured.
func seedMasterAdmin(cfg *config.Config, db *pgxpool.Pool) error {
	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	_, err := userRepo.GetByEmail(ctx, cfg.DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.DefaultAdminEmail,
		PasswordHash: hashed,
		FullName:     cfg.DefaultAdminName,
		Role:         models.RoleMasterAdmin,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return err
	}

	log.Printf("Seeded master admin %s", cfg.DefaultAdminEmail)
	return nil
}
