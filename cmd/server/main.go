package main

import (
	"context"
	"log"
	"time"

	"legal_crm_go/config"
	"legal_crm_go/db"
	"legal_crm_go/handlers"
	"legal_crm_go/middleware"
	"legal_crm_go/models"
	"legal_crm_go/services"
	"legal_crm_go/services/ai"
	"legal_crm_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	err := db.AutoMigrate(
		&models.Client{},
		&models.Practice{},
		&models.Lawyer{},
		&models.Document{},
		&models.Reminder{},
		&models.Letter{},
		&models.Quote{},
		&models.TimeEntry{},
		&models.FirmProfile{},
		&models.User{},
		&models.Session{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedFirmProfile(db.DB); err != nil {
		log.Fatalf("Failed to seed firm profile: %v", err)
	}

	// Export archive (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Drafting assistants; routes stay unregistered without an API key
	var aiHandler *handlers.AIHandler
	api := handlers.NewAPI()
	if cfg.GeminiAPIKey != "" {
		gen, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		aiHandler = handlers.NewAIHandler(ai.NewService(gen), api.Cache())
	} else {
		log.Println("[WARNING] GEMINI_API_KEY not set, drafting assistants disabled")
	}

	authHandler := handlers.NewAuthHandler(cfg, api.Cache())
	exportHandler := handlers.NewExportHandler()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Public routes
	e.POST("/api/auth/login", authHandler.Login, middleware.LoginRateLimiter.Middleware())

	// Authenticated API
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/register", authHandler.Register, middleware.RequireRole(models.RoleAdmin))

		// Generic cached reads for every resource
		protected.GET("/:resource", api.GetResource)
		protected.GET("/:resource/:id", api.GetResource)

		// Mutation gateway, one route per supported operation
		protected.POST("/clients", api.CreateClient)
		protected.PUT("/clients/:id", api.UpdateClient)
		protected.POST("/practices", api.CreatePractice)
		protected.PUT("/practices/:id", api.UpdatePractice)
		protected.POST("/lawyers", api.CreateLawyer)
		protected.PUT("/lawyers/:id", api.UpdateLawyer)
		protected.DELETE("/lawyers/:id", api.DeleteLawyer)
		protected.POST("/reminders", api.CreateReminder)
		protected.DELETE("/reminders/:id", api.DeleteReminder)
		protected.POST("/documents", api.CreateDocument)
		protected.DELETE("/documents/:id", api.DeleteDocument)
		protected.POST("/letters", api.CreateLetter)
		protected.DELETE("/letters/:id", api.DeleteLetter)
		protected.POST("/quotes", api.CreateQuote)
		protected.DELETE("/quotes/:id", api.DeleteQuote)
		protected.POST("/time-entries", api.CreateTimeEntry)
		protected.DELETE("/time-entries/:id", api.DeleteTimeEntry)
		protected.PUT("/firm-profile", api.UpsertFirmProfile)

		// Exports
		protected.GET("/export/letters/:id/pdf", exportHandler.ExportLetterPDF)
		protected.GET("/export/quotes/:id/pdf", exportHandler.ExportQuotePDF)
		protected.GET("/export/billing", exportHandler.ExportBillingReport)

		// Drafting assistants
		if aiHandler != nil {
			aiRoutes := protected.Group("/ai")
			aiRoutes.Use(middleware.GenerationRateLimiter.Middleware())
			{
				aiRoutes.POST("/summarize", aiHandler.Summarize)
				aiRoutes.POST("/draft-email", aiHandler.DraftEmail)
				aiRoutes.POST("/official-email", aiHandler.DraftOfficialEmail)
				aiRoutes.POST("/letters", aiHandler.DraftLetter)
				aiRoutes.POST("/classify", aiHandler.ClassifyPractice)
				aiRoutes.POST("/search", aiHandler.SearchKnowledgeBase)
				aiRoutes.POST("/documents/:id/analyze", aiHandler.AnalyzeDocument)
				aiRoutes.POST("/practices/:id/analyze", aiHandler.AnalyzePractice)
				aiRoutes.POST("/practices/:id/milestones", aiHandler.SuggestMilestones)
				aiRoutes.POST("/suggest-fee", aiHandler.SuggestFee)
				aiRoutes.POST("/check-quote", aiHandler.CheckQuoteCompliance)
			}
		}
	}

	// Session cleanup (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Daily reminder digest
	jobs.StartReminderJob(db.DB, cfg, make(chan struct{}))

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
