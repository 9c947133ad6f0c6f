package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"alfredoptarigan/hr-verification/internal/config"
	"alfredoptarigan/hr-verification/internal/handlers"
	"alfredoptarigan/hr-verification/internal/repositories"
	"alfredoptarigan/hr-verification/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewCloudinaryStorage(
		cfg.Storage.CloudName,
		cfg.Storage.UploadPreset,
	)
	mailer := services.NewSMTPMailer(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
		cfg.Server.BaseURL,
		cfg.Server.Env,
	)
	verificationService := services.NewVerificationService(
		verificationRepo,
		candidateRepo,
		storageService,
		mailer,
	)
	dashboardService := services.NewDashboardService(verificationRepo)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, verificationRepo, storageService)
	employmentHandler := handlers.NewEmploymentHandler(verificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR Verification API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 3,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", healthHandler(db))

	// Routes
	api := app.Group("/api")

	employments := api.Group("/employment-verifications")
	employments.Post("/", employmentHandler.HandleCreate)
	employments.Get("/form/:token", employmentHandler.HandleForm)
	employments.Post("/submit/:token", employmentHandler.HandleSubmit)
	employments.Post("/:id/calling-log", employmentHandler.HandleAddCallingLog)
	employments.Post("/:id/fail", employmentHandler.HandleMarkFailed)

	candidates := api.Group("/candidates")
	candidates.Get("/queue", candidateHandler.HandleQueue)
	candidates.Get("/search", candidateHandler.HandleSearch)
	candidates.Get("/:candidateId/employment-timeline", candidateHandler.HandleTimeline)
	candidates.Get("/:candidateId/summary", candidateHandler.HandleSummary)
	candidates.Get("/:candidateId/overview", candidateHandler.HandleOverview)
	candidates.Post("/", candidateHandler.HandleCreate)
	candidates.Post("/:candidateId/notes", candidateHandler.HandleAddNote)
	candidates.Post("/:candidateId/resume", candidateHandler.HandleUploadResume)

	api.Get("/dashboard/verifications", dashboardHandler.HandleVerificationStats)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "error",
				"database":  "disconnected",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"database":  "connected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
		"code":    code,
	})
}
