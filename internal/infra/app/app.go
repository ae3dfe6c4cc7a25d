package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/infra/config"
	"github.com/bookerhq/booker-backend/internal/infra/database"
	kafkainfra "github.com/bookerhq/booker-backend/internal/infra/kafka"
	"github.com/bookerhq/booker-backend/internal/infra/logger"
	"github.com/bookerhq/booker-backend/internal/infra/mail"
	redisinfra "github.com/bookerhq/booker-backend/internal/infra/redis"
	"github.com/bookerhq/booker-backend/internal/infra/security"
	"github.com/bookerhq/booker-backend/internal/infra/storage"
	"github.com/bookerhq/booker-backend/internal/infra/telemetry"
	postgresrepo "github.com/bookerhq/booker-backend/internal/repository/postgres"
	redisrepo "github.com/bookerhq/booker-backend/internal/repository/redis"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/transport/http/routes"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// Application bundles the wired service graph and its lifecycle.
type Application struct {
	cfg       *config.AppConfig
	engine    *gin.Engine
	logger    *zap.Logger
	pool      *pgxpool.Pool
	redis     *redisinfra.Client
	tracing   *telemetry.TracerProvider
	blacklist *usecase.TokenBlacklistService
	roles     *usecase.RoleService
}

// New wires every component from configuration and returns a runnable
// application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	audit := logger.NewAudit(log)

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	tokenIssuer, err := security.NewTokenIssuer(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.JWT.ExpirationSeconds)
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}
	hasher := security.NewPasswordHasher(cfg.Bcrypt.Cost)

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	diskStorage, err := storage.NewDiskStorage(cfg.Storage, log)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	mailSender := mail.NewSMTPSender(cfg.Mail, log)

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "booker:rate-limit",
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	blacklistService := usecase.NewTokenBlacklistService(repos.Tokens, log)
	roleService := usecase.NewRoleService(repos.Roles, log)
	authService := usecase.NewAuthService(repos.Users, repos.Roles, blacklistService, hasher, tokenIssuer, eventPublisher, mailSender, log)
	userService := usecase.NewUserService(repos.Users, diskStorage, hasher, log)
	appointmentService := usecase.NewAppointmentService(repos.Appointments, repos.Services, repos.Users, eventPublisher, mailSender, log)
	reviewService := usecase.NewReviewService(repos.Reviews, repos.Appointments, log)
	catalogService := usecase.NewCatalogService(repos.Services, log)
	paymentService := usecase.NewPaymentService(repos.Payments, repos.Appointments, log)
	authorizer := usecase.NewOwnershipAuthorizer(repos.Appointments, repos.Reviews, repos.Services, log)

	if err := roleService.Seed(ctx); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("seed roles: %w", err)
	}

	var metrics *middleware.HTTPMetrics
	if cfg.Telemetry.MetricsEnabled {
		metrics, err = middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
		if err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("init http metrics: %w", err)
		}
	}

	var tracing *telemetry.TracerProvider
	var tracer trace.Tracer
	if cfg.Telemetry.TracingEnabled {
		tracing, err = telemetry.NewTracerProvider(ctx, cfg.App.Name, cfg.Telemetry, log)
		if err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		tracer = tracing.Tracer("transport/http")
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Audit:       audit,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Tracer:      tracer,
		Database:    pool,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Auth:         authService,
			Users:        userService,
			Roles:        roleService,
			Appointments: appointmentService,
			Reviews:      reviewService,
			Catalog:      catalogService,
			Payments:     paymentService,
			Authorizer:   authorizer,
		},
	})

	return &Application{
		cfg:       cfg,
		engine:    engine,
		logger:    log,
		pool:      pool,
		redis:     redisClient,
		tracing:   tracing,
		blacklist: blacklistService,
		roles:     roleService,
	}, nil
}

// Run serves HTTP until the context is cancelled, sweeping the token
// blacklist in the background.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.tracing != nil {
			if err := a.tracing.Shutdown(context.Background()); err != nil {
				a.logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}
	}()

	go a.blacklist.RunSweep(ctx, a.cfg.Blacklist.SweepInterval)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting booker API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
