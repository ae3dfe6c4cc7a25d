package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/infra/config"
	"github.com/bookerhq/booker-backend/internal/infra/logger"
	"github.com/bookerhq/booker-backend/internal/transport/http/handlers"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Users        *usecase.UserService
	Roles        *usecase.RoleService
	Appointments *usecase.AppointmentService
	Reviews      *usecase.ReviewService
	Catalog      *usecase.CatalogService
	Payments     *usecase.PaymentService
	Authorizer   *usecase.OwnershipAuthorizer
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Audit       *logger.Audit
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Tracer      trace.Tracer
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	if deps.Tracer != nil {
		r.Use(middleware.Tracing(nil, deps.Tracer))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.CORSAllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	if deps.Config.Telemetry.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Uploaded profile images are served straight from the storage dir.
	if deps.Config.Storage.BaseURL != "" && deps.Config.Storage.Dir != "" {
		r.Static(deps.Config.Storage.BaseURL, deps.Config.Storage.Dir)
	}

	api := r.Group("/api/v1")
	{
		authz := deps.Services.Authorizer

		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Audit)
		authHandler.RegisterRoutes(api.Group("/auth"),
			buildRateLimitMiddlewares(deps, "auth_register_ip", deps.Config.RateLimit.RegisterMaxAttempts),
			buildRateLimitMiddlewares(deps, "auth_login_ip", deps.Config.RateLimit.LoginMaxAttempts),
		)

		userHandler := handlers.NewUserHandler(deps.Services.Users, authz)
		userGroup := api.Group("/users")
		userGroup.Use(authMiddleware)
		userHandler.RegisterRoutes(userGroup)

		roleHandler := handlers.NewRoleHandler(deps.Services.Roles, authz)
		roleGroup := api.Group("/roles")
		roleGroup.Use(authMiddleware)
		roleHandler.RegisterRoutes(roleGroup)

		appointmentHandler := handlers.NewAppointmentHandler(deps.Services.Appointments, authz)
		appointmentGroup := api.Group("/appointments")
		appointmentGroup.Use(authMiddleware)
		appointmentHandler.RegisterRoutes(appointmentGroup)

		reviewHandler := handlers.NewReviewHandler(deps.Services.Reviews, authz)
		reviewHandler.RegisterPublicRoutes(api)
		reviewGroup := api.Group("/reviews")
		reviewGroup.Use(authMiddleware)
		reviewHandler.RegisterRoutes(reviewGroup)

		serviceHandler := handlers.NewServiceHandler(deps.Services.Catalog, authz)
		serviceHandler.RegisterPublicRoutes(api.Group("/services"))
		serviceAuthGroup := api.Group("/services")
		serviceAuthGroup.Use(authMiddleware)
		serviceHandler.RegisterRoutes(serviceAuthGroup)

		paymentHandler := handlers.NewPaymentHandler(deps.Services.Payments, authz)
		paymentGroup := api.Group("/payments")
		paymentGroup.Use(authMiddleware)
		paymentHandler.RegisterRoutes(paymentGroup)
	}

	return r
}

func buildRateLimitMiddlewares(deps Dependencies, name string, limit int) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil || limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       name,
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
