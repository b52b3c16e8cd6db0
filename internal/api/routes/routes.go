package routes

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"talentflow/internal/api/handlers"
	"talentflow/internal/api/middleware"
	"talentflow/internal/auth"
	"talentflow/internal/config"
	"talentflow/internal/hr"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
)

// Dependencies are the services the routes are built over.
type Dependencies struct {
	Services    *hr.Services
	Auth        *auth.Service
	RateLimiter *middleware.IPRateLimiter
	Checks      map[string]handlers.Check
	Logger      logging.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	logger := deps.Logger
	svc := deps.Services

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg.Server.AllowedOrigins))
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.TimeoutConfig(cfg.Server.RequestTimeout))

	e.GET("/", handlers.Banner)

	health := &handlers.Health{Checks: deps.Checks, Logger: logger}
	healthGroup := e.Group("/health")
	{
		healthGroup.GET("", health.Healthy)
		healthGroup.GET("/ready", health.Ready)
		healthGroup.GET("/live", health.Live)
	}

	api := e.Group("/api")
	api.GET("/health", handlers.APIHealth)

	authHandler := &handlers.Auth{Service: deps.Auth, Logger: logger}
	authGroup := api.Group("/auth")
	{
		throttled := []echo.MiddlewareFunc{}
		if cfg.RateLimit.Enabled && deps.RateLimiter != nil {
			throttled = append(throttled, deps.RateLimiter.Middleware())
		}
		authGroup.POST("/login", authHandler.Login, throttled...)
		authGroup.POST("/signup", authHandler.Signup, throttled...)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me, middleware.Auth(deps.Auth))
	}

	protected := api.Group("", middleware.Auth(deps.Auth))

	candidates := &handlers.Resource[models.Candidate, *models.Candidate, models.CandidateInput, models.CandidatePatch]{
		Name:    "Candidate",
		Service: svc.Candidates,
		Build:   func(in models.CandidateInput) models.Candidate { return in.Candidate(svc.Today()) },
		Apply:   models.CandidatePatch.Apply,
		Logger:  logger,
	}
	candidates.Register(protected.Group("/candidates"))

	interviews := &handlers.Resource[models.Interview, *models.Interview, models.InterviewInput, models.InterviewPatch]{
		Name:    "Interview",
		Service: svc.Interviews,
		Build:   models.InterviewInput.Interview,
		Apply:   models.InterviewPatch.Apply,
		Logger:  logger,
	}
	interviews.Register(protected.Group("/interviews"))

	employees := &handlers.Resource[models.Employee, *models.Employee, models.EmployeeInput, models.EmployeePatch]{
		Name:    "Employee",
		Service: svc.Employees,
		Build:   func(in models.EmployeeInput) models.Employee { return in.Employee(svc.Today()) },
		Apply:   models.EmployeePatch.Apply,
		Logger:  logger,
	}
	employees.Register(protected.Group("/employees"))

	onboarding := &handlers.Resource[models.OnboardingTask, *models.OnboardingTask,
		models.TaskInput[models.OnboardingCategory], models.TaskPatch[models.OnboardingCategory]]{
		Name:    "Task",
		Service: svc.Onboarding,
		Build:   models.TaskInput[models.OnboardingCategory].Task,
		Apply:   models.TaskPatch[models.OnboardingCategory].Apply,
		Logger:  logger,
	}
	onboarding.Register(protected.Group("/onboarding"))

	offboarding := &handlers.Resource[models.OffboardingTask, *models.OffboardingTask,
		models.TaskInput[models.OffboardingCategory], models.TaskPatch[models.OffboardingCategory]]{
		Name:    "Task",
		Service: svc.Offboarding,
		Build:   models.TaskInput[models.OffboardingCategory].Task,
		Apply:   models.TaskPatch[models.OffboardingCategory].Apply,
		Logger:  logger,
	}
	offboarding.Register(protected.Group("/offboarding"))

	documentRecords := &handlers.Resource[models.Document, *models.Document, models.DocumentInput, struct{}]{
		Name:    "Document",
		Service: svc.Documents.Service,
		Build:   func(in models.DocumentInput) models.Document { return in.Document(svc.Today()) },
		Logger:  logger,
	}
	documentFiles := &handlers.Documents{Service: svc.Documents, MaxSize: cfg.Storage.MaxSize, Logger: logger}
	documents := protected.Group("/documents")
	{
		documents.GET("", documentRecords.List)
		documents.POST("", documentRecords.Create)
		documents.POST("/upload", documentFiles.Upload)
		documents.GET("/:id", documentRecords.Get)
		documents.GET("/:id/download", documentFiles.Download)
		documents.GET("/:id/content", documentFiles.Content)
		documents.DELETE("/:id", documentFiles.Delete)
	}

	protected.GET("/analytics", handlers.AnalyticsHandler(svc.Analytics))

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/stats", handlers.DashboardStatsHandler(svc.Dashboard))
		dashboard.GET("/stats/refresh", handlers.DashboardRefreshHandler(svc.Dashboard))
	}
}
