package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fuelstation_backend/internal/core/services"
	"github.com/SscSPs/fuelstation_backend/internal/handlers"
	"github.com/SscSPs/fuelstation_backend/internal/jobs"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/SscSPs/fuelstation_backend/internal/platform/cache"
	"github.com/SscSPs/fuelstation_backend/internal/platform/config"
	"github.com/SscSPs/fuelstation_backend/internal/platform/metrics"
	"github.com/SscSPs/fuelstation_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/fuelstation_backend/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 15 * time.Second

func runServe(ctx context.Context, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		return err
	}

	dashboardCache := openDashboardCache(ctx, cfg, logger)
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, dashboardCache, appMetrics)

	if cfg.EnableJobs {
		if err := jobs.Migrate(ctx, dbPool); err != nil {
			return err
		}
		logger.Info("River migrations applied")

		riverClient, err := jobs.NewClient(dbPool, serviceContainer.Credit, cfg.OverdueSweepInterval, logger)
		if err != nil {
			return err
		}
		if err := riverClient.Start(ctx); err != nil {
			return fmt.Errorf("failed to start river client: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := riverClient.Stop(stopCtx); err != nil {
				logger.Error("River client did not stop cleanly", slog.String("error", err.Error()))
			}
		}()
		logger.Info("Overdue sweep scheduled", slog.Duration("interval", cfg.OverdueSweepInterval))
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDependencies{
		IdempotencyRepo: repos.IdempotencyRepo,
		RateLimiter:     rateLimiter,
		HTTPMetrics:     appMetrics,
		MetricsHandler:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server exited")
	return nil
}

func runSweepOverdue(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	creditService := services.NewCreditService(pgsql.NewRepositoryProvider(dbPool).CreditRepo)
	rows, err := creditService.RefreshOverdueStatuses(ctx)
	if err != nil {
		return err
	}
	logger.Info("Credit statuses refreshed", slog.Int64("rows", rows))
	return nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:         cfg.DBMaxConns,
		LockTimeout:      cfg.LockTimeout,
		StatementTimeout: cfg.StatementTimeout,
		Ping:             cfg.EnableDBCheck,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pool, nil
}

// openDashboardCache returns nil when Redis is not configured or unreachable;
// dashboard counts are then always computed from the database.
func openDashboardCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) portsrepo.DashboardCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable, dashboard cache disabled", slog.String("error", err.Error()))
		return nil
	}
	return cache.NewRedisDashboardCache(client, cfg.DashboardCacheTTL)
}
