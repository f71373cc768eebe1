package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"electrotrack/internal/config"
	"electrotrack/internal/delivery/http/handler"
	domainDashboard "electrotrack/internal/domain/dashboard"
	domainLoan "electrotrack/internal/domain/loan"
	"electrotrack/internal/infrastructure/database/postgres"
	"electrotrack/internal/logger"
	"electrotrack/internal/metrics"
	"electrotrack/internal/middleware"
	"electrotrack/internal/usecase/audit"
	"electrotrack/internal/usecase/chip"
	"electrotrack/internal/usecase/dashboard"
	"electrotrack/internal/usecase/employee"
	"electrotrack/internal/usecase/equipment"
	"electrotrack/internal/usecase/loan"
	"electrotrack/internal/usecase/user"
)

// Dependencies are the process-wide resources opened by main.
type Dependencies struct {
	Config    *config.Config
	DB        *postgres.DB
	Cache     domainDashboard.Cache
	Publisher domainLoan.EventPublisher
	Metrics   *metrics.Metrics
}

type Services struct {
	Loans     *loan.Service
	Equipment *equipment.Service
	Chips     *chip.Service
	Employees *employee.Service
	Users     *user.Service
	Dashboard *dashboard.Service
	Audit     *audit.Service
}

func NewServices(deps Dependencies) *Services {
	auditRepository := postgres.NewAuditRepository(deps.DB)
	recorder := audit.NewRecorder(auditRepository, deps.Cache)

	return &Services{
		Loans:     loan.NewService(postgres.NewLoanRepository(deps.DB), deps.Cache, deps.Publisher, deps.Metrics),
		Equipment: equipment.NewService(postgres.NewEquipmentRepository(deps.DB), recorder),
		Chips:     chip.NewService(postgres.NewChipRepository(deps.DB), recorder),
		Employees: employee.NewService(postgres.NewEmployeeRepository(deps.DB), recorder),
		Users:     user.NewService(postgres.NewUserRepository(deps.DB), recorder, deps.Config),
		Dashboard: dashboard.NewService(postgres.NewDashboardRepository(deps.DB), deps.Cache),
		Audit:     audit.NewService(auditRepository),
	}
}

// SetupRoutes builds the gin engine. ctx bounds the background cleanup of
// the rate limiter.
func SetupRoutes(ctx context.Context, deps Dependencies, services *Services) *gin.Engine {
	cfg := deps.Config
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	go limiter.Run(ctx)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(deps.Metrics.Middleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(limiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		healthCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := deps.DB.Health(healthCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	loanHandler := handler.NewLoanHandler(services.Loans)
	equipmentHandler := handler.NewEquipmentHandler(services.Equipment)
	chipHandler := handler.NewChipHandler(services.Chips)
	employeeHandler := handler.NewEmployeeHandler(services.Employees)
	userHandler := handler.NewUserHandler(services.Users)
	dashboardHandler := handler.NewDashboardHandler(services.Dashboard)
	auditHandler := handler.NewAuditHandler(services.Audit)

	api := router.Group("/api")
	{
		userHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			loanHandler.RegisterRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)
			chipHandler.RegisterRoutes(protected)
			employeeHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)

			writer := protected.Group("")
			writer.Use(middleware.RequireWrite())
			{
				loanHandler.RegisterWriteRoutes(writer)
				equipmentHandler.RegisterWriteRoutes(writer)
				chipHandler.RegisterWriteRoutes(writer)
				employeeHandler.RegisterWriteRoutes(writer)
			}

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				auditHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
