package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fuelstation_backend/cmd/docs"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/SscSPs/fuelstation_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDependencies are the infrastructure pieces the router wires in.
// Nil fields switch the matching feature off.
type RouteDependencies struct {
	IdempotencyRepo portsrepo.IdempotencyRepository
	RateLimiter     *limiter.Limiter
	HTTPMetrics     middleware.HTTPObserver
	MetricsHandler  http.Handler
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDependencies,
) {
	if err := RegisterValidators(); err != nil {
		slog.Error("Failed to register custom validators", slog.String("error", err.Error()))
	}

	if deps.HTTPMetrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.HTTPMetrics))
	}
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		ExposeHeaders: []string{"X-Request-ID", middleware.IdempotencyHitHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDependencies,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	var paymentWrites []gin.HandlerFunc
	if deps.RateLimiter != nil {
		paymentWrites = append(paymentWrites, middleware.RateLimit(deps.RateLimiter))
	}
	if deps.IdempotencyRepo != nil {
		paymentWrites = append(paymentWrites, middleware.Idempotency(deps.IdempotencyRepo))
	}

	RegisterCreditRoutes(v1, service.Credit, service.Payment, paymentWrites...)
	RegisterPaymentRoutes(v1, service.Payment, paymentWrites...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
