package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/audit"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/config"
	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/handlers"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/middleware"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/appointment"
)

// Deps are the process singletons the routes are built from.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Appointments domain.Repository
	Users        account.Store
	AuditLogs    handlers.AuditLogLister
	Audit        *audit.Dispatcher

	// Optional. A nil Cache disables availability caching and a nil Redis
	// disables rate limiting.
	Cache  ucAppointment.Cache
	Redis  *redis.Client
	Checks map[string]handlers.Check

	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.CORSMiddleware(d.Config.Origins()))

	// ======================================================
	// USE CASES
	// ======================================================
	catalog := domain.NewSlotCatalog()
	resolver := domain.NewResolver(d.Appointments, catalog)

	createUC := ucAppointment.NewCreateAppointment(d.Appointments, resolver, d.Cache, d.Audit)
	updateUC := ucAppointment.NewUpdateAppointment(d.Appointments, d.Cache, d.Audit)
	overviewUC := ucAppointment.NewOverview(d.Appointments)
	if d.Now != nil {
		createUC.WithClock(d.Now)
		updateUC.WithClock(d.Now)
		overviewUC.WithClock(d.Now)
	}

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:       createUC,
		Get:          ucAppointment.NewGetAppointment(d.Appointments),
		History:      ucAppointment.NewListHistory(d.Appointments),
		ListAll:      ucAppointment.NewListAll(d.Appointments),
		Update:       updateUC,
		Cancel:       ucAppointment.NewCancelAppointment(updateUC),
		Availability: ucAppointment.NewGetAvailability(resolver, d.Cache),
		Overview:     overviewUC,
	}, log)

	authHandler := handlers.NewAuthHandler(
		account.NewRegister(d.Users, d.Audit),
		account.NewAuthenticate(d.Users),
		d.Config.JWTSecret,
		d.Config.TokenTTL,
		log,
	)
	meHandler := handlers.NewMeHandler(d.Users, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, log)
	healthHandler := handlers.NewHealthHandler(d.Checks)

	limiter := middleware.NewRateLimiter(d.Redis, d.Config.RateLimitPerMinute, time.Minute, "rl:availability", log)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/maintenance/availability", limiter.Middleware(), appointmentHandler.Availability)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			m := secured.Group("/maintenance")
			{
				m.POST("", appointmentHandler.Create)
				m.POST("/requests", appointmentHandler.Request)
				m.GET("/history", appointmentHandler.History)

				admin := m.Group("/admin")
				admin.Use(middleware.RequireAdmin())
				{
					admin.GET("/all", appointmentHandler.ListAll)
					admin.GET("/overview", appointmentHandler.Overview)
				}

				m.GET("/:id", appointmentHandler.Get)
				m.PATCH("/:id", appointmentHandler.Update)
				m.DELETE("/:id/cancel", appointmentHandler.Cancel)
			}

			secured.GET("/audit-logs", middleware.RequireAdmin(), auditLogsHandler.List)
		}
	}
}
