// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/records-api/internal/auth"
	"github.com/carterperez-dev/templates/records-api/internal/bookmark"
	"github.com/carterperez-dev/templates/records-api/internal/business"
	"github.com/carterperez-dev/templates/records-api/internal/config"
	"github.com/carterperez-dev/templates/records-api/internal/core"
	"github.com/carterperez-dev/templates/records-api/internal/health"
	"github.com/carterperez-dev/templates/records-api/internal/middleware"
	"github.com/carterperez-dev/templates/records-api/internal/resource"
	"github.com/carterperez-dev/templates/records-api/internal/server"
	"github.com/carterperez-dev/templates/records-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	var (
		redis      *core.Redis
		createLock resource.Locker
		redisCheck health.Checker
	)
	if cfg.Redis.Enabled() {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		createLock = resource.NewCreateLock(redis.Client, cfg.Resources.CreateLockTTL)
		redisCheck = redis
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
			"create_lock_ttl", cfg.Resources.CreateLockTTL,
		)
	} else {
		logger.Info("redis not configured, create lock disabled")
	}

	hasher, err := core.NewPasswordHasher(core.Argon2Params{
		Time:    cfg.Security.ArgonTime,
		Memory:  cfg.Security.ArgonMemory,
		Threads: cfg.Security.ArgonThreads,
	})
	if err != nil {
		return err
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token issuer initialized",
		"algorithm", "HS256",
		"ttl", cfg.JWT.AccessTokenExpire,
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, hasher, issuer)
	authHandler := auth.NewHandler(authSvc)

	businessScope, err := resource.ParseScope(cfg.Resources.BusinessScope)
	if err != nil {
		return err
	}
	logger.Info("business scope", "scope", businessScope)

	businessSchema := business.NewSchema(businessScope)
	businessSvc := resource.NewService[business.Business](
		businessSchema,
		resource.NewRepository[business.Business](db.DB, businessSchema),
		createLock,
		logger,
	)
	businessHandler := business.NewHandler(businessSvc, cfg.Resources.DefaultPerPage)

	bookmarkSvc := resource.NewService[bookmark.Bookmark](
		bookmark.Schema,
		resource.NewRepository[bookmark.Bookmark](db.DB, bookmark.Schema),
		createLock,
		logger,
	)
	bookmarkHandler := bookmark.NewHandler(bookmarkSvc, cfg.Resources.DefaultPerPage)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redisCheck, Optional: true},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.TrustedProxy(cfg.Server.TrustProxy))
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(issuer)

	routes := func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, authenticator)
		businessHandler.RegisterRoutes(r, authenticator)
		bookmarkHandler.RegisterRoutes(r, authenticator)
	}
	router.Route("/v1", routes)
	router.Group(routes)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if redis != nil {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
