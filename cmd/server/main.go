package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/msme-awards/adjudication-api/internal/applications"
	"github.com/msme-awards/adjudication-api/internal/config"
	"github.com/msme-awards/adjudication-api/internal/database"
	"github.com/msme-awards/adjudication-api/internal/handlers"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/logging"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
	"github.com/msme-awards/adjudication-api/internal/routes"
	"github.com/msme-awards/adjudication-api/internal/services"
	"github.com/msme-awards/adjudication-api/internal/store"
	"gorm.io/gorm"
)

func main() {
	createAdmin := flag.Bool("create-admin", false, "create an admin account (args: email password displayName) and exit")
	flag.Parse()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	idp := identity.NewService(db, cfg.JWTSecret, cfg.JWTAccessExpiry)

	if *createAdmin {
		if err := bootstrapAdmin(db, idp, flag.Args()); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// Stores
	accounts := store.NewAccounts(db)
	links := store.NewLinks(db)
	reviews := store.NewReviews(db)
	decisions := store.NewDecisions(db)
	activity := store.NewActivity(db)
	invitations := store.NewInvitations(db)

	// Notifier
	mail := notifier.NewSMTP(cfg)

	// Application data (Google Sheets + cache mirror)
	sheets, err := applications.NewSheetsClient(context.Background(), cfg)
	if err != nil {
		slog.Error("google sheets client init failed", "error", err)
		os.Exit(1)
	}
	appData := applications.NewService(sheets, applications.NewFileCache(cfg.CacheFile), cfg.SheetRange, cfg.CacheTTL)

	// Services
	registrationService := services.NewRegistrationService(links, accounts, idp, mail, cfg.ClientURL, cfg.DefaultLinkTTL)
	accountService := services.NewAccountService(accounts, activity, idp, mail)
	reviewService := services.NewReviewService(reviews)
	decisionService := services.NewDecisionService(decisions, mail)
	invitationService := services.NewInvitationService(invitations, mail)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(idp, accountService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	accountHandler := handlers.NewAccountHandler(accountService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	decisionHandler := handlers.NewDecisionHandler(decisionService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	dataHandler := handlers.NewApplicationDataHandler(appData)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, idp, accounts,
		healthHandler, authHandler, registrationHandler, accountHandler,
		reviewHandler, decisionHandler, invitationHandler, dataHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// bootstrapAdmin provisions the first admin out of band: the account is
// created approved and self-approved so it can log in before any other
// admin exists to approve it.
func bootstrapAdmin(db *gorm.DB, idp identity.Provider, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: --create-admin <email> <password> <displayName>")
	}
	email, password, displayName := args[0], args[1], args[2]

	uid, err := idp.CreateIdentity(email, password, displayName)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	now := time.Now()
	account := &models.Account{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		Role:        models.RoleAdmin,
		Status:      models.StatusApproved,
		AddedBy:     uid,
		AddedByName: displayName,
		ApprovedBy:  &uid,
		ApprovedAt:  &now,
	}
	if err := store.NewAccounts(db).Create(account); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if err := idp.SetClaims(uid, map[string]interface{}{
		"role":   models.RoleAdmin,
		"status": models.StatusApproved,
	}); err != nil {
		return fmt.Errorf("failed to set admin claims: %w", err)
	}

	slog.Info("admin account created", "uid", uid, "email", email)
	return nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
