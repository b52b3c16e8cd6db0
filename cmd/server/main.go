package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/handlers"
	"talentflow/internal/api/middleware"
	"talentflow/internal/api/routes"
	"talentflow/internal/api/validation"
	"talentflow/internal/auth"
	"talentflow/internal/background"
	"talentflow/internal/config"
	"talentflow/internal/extract"
	"talentflow/internal/hr"
	"talentflow/internal/logging"
	"talentflow/internal/scheduler"
	"talentflow/internal/storage"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()
	logger := logging.GetGlobalLogger()
	logger.Info("Starting TalentFlow API", map[string]interface{}{"version": handlers.Version})

	checks := map[string]handlers.Check{}

	// Token revocations, shared through Redis when enabled
	var revocations auth.Revocations = auth.NewMemoryRevocations()
	if cfg.Redis.Enabled {
		redisRevocations := auth.NewRedisRevocations(auth.NewRedisClient(cfg), logger)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		err := redisRevocations.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		defer redisRevocations.Close()
		revocations = redisRevocations
		checks["redis"] = redisRevocations.Ping
	}

	dir := hr.NewDirectory()
	validator := validation.New()

	authService := auth.NewService(dir.Users, auth.Options{
		Secret:      cfg.Auth.JWTSecret,
		TokenTTL:    cfg.Auth.TokenTTL,
		BcryptCost:  cfg.Auth.BcryptCost,
		Revocations: revocations,
		Validator:   validator,
		Logger:      logger,
	})

	blobs, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize document storage", map[string]interface{}{"error": err.Error()})
	}
	checks["storage"] = blobs.Health

	// Initialize background task manager
	taskManager := background.NewManager(cfg, logger)
	if err := taskManager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{"error": err.Error()})
	}
	checks["workers"] = taskManager.Health

	services := hr.NewServices(dir, hr.Options{
		Validator: validator,
		Logger:    logger,
		Blobs:     blobs,
		Extractor: extract.New(0),
		Jobs:      taskManager,
	})

	if cfg.Seed.Enabled {
		seed, err := hr.LoadSeed(cfg.Seed.Path)
		if err != nil {
			logger.Fatal("Failed to load seed data", map[string]interface{}{"error": err.Error()})
		}
		if err := seed.Apply(dir, authService.HashPassword); err != nil {
			logger.Fatal("Failed to apply seed data", map[string]interface{}{"error": err.Error()})
		}
		logger.Info("Seed data loaded", map[string]interface{}{"counts": dir.Counts()})
	}

	rateLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)

	// Maintenance jobs
	cron := scheduler.New(logger, time.Minute)
	if cfg.Scheduler.Enabled {
		jobs := []scheduler.Job{
			{Name: "revocation-purge", Spec: cfg.Scheduler.RevocationPurge, Run: func(ctx context.Context) error {
				n, err := authService.PurgeRevocations(ctx)
				if n > 0 {
					logger.Info("Purged expired token revocations", map[string]interface{}{"count": n})
				}
				return err
			}},
			{Name: "rate-limit-cleanup", Spec: cfg.Scheduler.RevocationPurge, Run: func(context.Context) error {
				rateLimiter.Cleanup()
				return nil
			}},
			{Name: "dashboard-refresh", Spec: cfg.Scheduler.DashboardRefresh, Run: func(context.Context) error {
				services.Dashboard.Refresh()
				return nil
			}},
		}
		for _, job := range jobs {
			if err := cron.Add(job); err != nil {
				logger.Fatal("Failed to schedule job", map[string]interface{}{"error": err.Error()})
			}
		}
		cron.Start()
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	routes.SetupRoutes(e, cfg, routes.Dependencies{
		Services:    services,
		Auth:        authService,
		RateLimiter: rateLimiter,
		Checks:      checks,
		Logger:      logger,
	})

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop accepting requests first so no new jobs are queued
		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping scheduler...")
		if err := cron.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping scheduler", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping background task manager...")
		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := cfg.Address()
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
	<-done
}
