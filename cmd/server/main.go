package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	"github.com/toneill57/muva-chat-sub004/internal/application"
	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/config"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
	"github.com/toneill57/muva-chat-sub004/internal/email"
	"github.com/toneill57/muva-chat-sub004/internal/infrastructure/repository"
	handlers "github.com/toneill57/muva-chat-sub004/internal/interfaces/http"
	"github.com/toneill57/muva-chat-sub004/internal/portal"
	"github.com/toneill57/muva-chat-sub004/internal/scheduler"
	services "github.com/toneill57/muva-chat-sub004/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Parámetros de cumplimiento: el entorno da los valores de arranque y la
	// tabla compliance_settings los sobrescribe por tenant. Se resuelven en
	// cada solicitud, así que un PUT sobre /settings aplica sin reiniciar
	settingsRepo := repository.NewSettingsRepository(db)
	settingsService := application.NewSettingsService(settingsRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	tenantParams := application.NewTenantParams(settingsService, application.TenantDefaults{
		HotelSireCode: cfg.HotelSireCode,
		HotelCityCode: cfg.HotelCityCode,
		NotifyEmail:   cfg.ComplianceNotifyEmail,
		TraEnabled:    cfg.TraEnabled,
	})

	// Catálogos geográficos
	resolver := catalog.NewResolver()
	catalogHandler := handlers.NewCatalogHandler(resolver)

	// Recolección progresiva de datos de huésped
	titularRepo := repository.NewGuestReservationRepository(db)
	companionRepo := repository.NewCompanionRepository(db)
	fieldMapper := application.NewFieldMapper(resolver, titularRepo, companionRepo)
	tracker := application.NewProgressTracker()
	guestDataService := application.NewGuestDataService(
		fieldMapper,
		tracker,
		resolver,
		titularRepo,
		companionRepo,
		tenantParams,
	)
	sireDataHandler := handlers.NewSireDataHandler(guestDataService)

	// Email Client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		emailClient = nil // Continuar sin notificaciones
	}

	// Evidencia de envíos en S3
	var evidenceStore domain.EvidenceStore
	s3Store, err := services.NewS3EvidenceStore()
	if err != nil {
		log.Printf("Warning: S3 evidence store initialization failed: %v", err)
	} else {
		evidenceStore = s3Store
	}

	// Portales gubernamentales. El adaptador TRA se construye siempre; si el
	// tenant reporta al TRA se decide por envío desde los settings
	sirePortal := portal.NewClient(cfg.PortalRunnerURL, cfg.PortalRunnerToken, "SIRE", cfg.PortalTimeout)
	traPortal := portal.NewClient(cfg.PortalRunnerURL, cfg.PortalRunnerToken, "TRA", cfg.PortalTimeout)

	// Envíos
	submissionRepo := repository.NewSubmissionRepository(db)
	complianceService := application.NewComplianceService(
		submissionRepo,
		titularRepo,
		companionRepo,
		fieldMapper,
		tracker,
		sirePortal,
		traPortal,
		evidenceStore,
		emailClient,
		tenantParams,
		cfg.TenantID,
		cfg.PortalTimeout,
	)
	submitLimiter := application.NewRateLimiter(time.Minute, 5)
	complianceHandler := handlers.NewComplianceHandler(complianceService, submitLimiter)

	// Watchdog de envíos atascados en submitting
	watchdog := scheduler.NewComplianceScheduler(submissionRepo, cfg.PortalTimeout*2)
	watchdog.Start()
	defer watchdog.Stop()

	api := app.Group("/api")

	// Rutas de catálogos
	catalogs := api.Group("/catalogs")
	catalogs.Get("/search", catalogHandler.Search)

	// Rutas de datos SIRE por reserva
	reservations := api.Group("/reservations")
	reservations.Get("/:id/sire-data", sireDataHandler.GetProgress)
	reservations.Put("/:id/sire-data", sireDataHandler.SaveFields)

	// Rutas de cumplimiento
	compliance := api.Group("/compliance")
	compliance.Get("/status/:id", complianceHandler.GetStatus)
	compliance.Patch("/status/:id", complianceHandler.PatchStatus)
	compliance.Post("/reservations/:id/submit", complianceHandler.Submit)
	compliance.Post("/submissions/:id/retry", complianceHandler.Retry)
	compliance.Get("/settings", settingsHandler.GetAllSettings)
	compliance.Get("/settings/:key", settingsHandler.GetSetting)
	compliance.Put("/settings/:key", settingsHandler.UpdateSetting)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
