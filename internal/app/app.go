package app

import (
	"io"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/handlers"
	"jobboard/internal/middleware"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/internal/throttle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options are the dependencies of the HTTP application. Counter defaults
// to an in-process counter; Events and CVStore are optional.
type Options struct {
	Config   *config.Config
	Settings services.ConfigSource
	DB       *gorm.DB
	Counter  throttle.Counter
	Events   services.EventPublisher
	CVStore  services.CVStore
	Clock    func() time.Time
	// LogOutput receives the request log. Nil means stdout.
	LogOutput io.Writer
}

// New assembles repositories, services and handlers into a Fiber app.
func New(opts Options) *fiber.App {
	cfg := opts.Config
	counter := opts.Counter
	if counter == nil {
		counter = throttle.NewMemoryCounter()
	}

	// --- Repositories ---
	jobRepo := repositories.NewGORMJobRepository(opts.DB)
	applicationRepo := repositories.NewGORMApplicationRepository(opts.DB)
	seekerRepo := repositories.NewGORMJobSeekerRepository(opts.DB)
	employerRepo := repositories.NewGORMEmployerRepository(opts.DB)

	// --- Services ---
	applicationOpts := []services.ApplicationOption{
		services.WithEligibility(cfg.Jobs.Eligibility),
		services.WithClock(opts.Clock),
	}
	if opts.CVStore != nil {
		applicationOpts = append(applicationOpts, services.WithCVStore(opts.CVStore, cfg.MinIO.URLExpiry))
	}
	jobService := services.NewJobService(jobRepo, employerRepo, opts.Events)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, seekerRepo, opts.Events, applicationOpts...)
	directory := services.NewAccountDirectory(employerRepo, seekerRepo)
	seekerService := services.NewJobSeekerService(seekerRepo, opts.Events, services.WithEmailDirectory(directory))
	employerService := services.NewEmployerService(employerRepo, opts.Events, services.WithEmailDirectory(directory))
	authService := services.NewAuthService(
		directory,
		services.NewTokenIssuer(opts.Settings),
		seekerService,
		employerService,
	)
	limiter := services.NewLoginThrottle(counter, cfg.Auth.MaxLoginAttempts)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, limiter, cfg.Auth.ResetAttemptsOnSuccess)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	seekerHandler := handlers.NewJobSeekerHandler(seekerService)
	employerHandler := handlers.NewEmployerHandler(employerService)

	app := fiber.New(fiber.Config{
		AppName:      "jobboard",
		ErrorHandler: handlers.ErrorHandler,
		ProxyHeader:  cfg.Server.ProxyHeader,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${ip} ${method} ${path} ${latency}\n",
		Output: opts.LogOutput,
	}))

	app.Get("/health", healthHandler(opts.DB))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	jobHandler.RegisterRoutes(protected)
	applicationHandler.RegisterRoutes(protected)
	seekerHandler.RegisterRoutes(protected)
	employerHandler.RegisterRoutes(protected)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		database := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code, database = "degraded", fiber.StatusServiceUnavailable, "down"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
