package handlers

import (
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/docs"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/SscSPs/simplefi_backend/internal/platform/config"
	"github.com/SscSPs/simplefi_backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

type clockFunc func() time.Time

// RouterDeps carries optional infrastructure for the router. Nil fields disable the
// corresponding feature.
type RouterDeps struct {
	Posthog   *utils.PosthogClientWrapper
	AILimiter *limiter.Limiter
	Clock     func() time.Time
}

// NewRouter builds the gin engine with global middleware and all routes.
func NewRouter(cfg *config.Config, services *portssvc.ServiceContainer, logger *slog.Logger, deps RouterDeps) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	r.Use(cors.New(corsConfig))

	RegisterRoutes(r, cfg, services, deps)
	return r, nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	registerServiceRoutes(r, services.Health)

	setupAPIRoutes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the ledger API and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	api := r.Group("")
	if cfg.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}
	api.Use(middleware.PosthogMiddleware(deps.Posthog))

	clock := clockFunc(time.Now)
	if deps.Clock != nil {
		clock = deps.Clock
	}

	var aiLimit gin.HandlerFunc
	if deps.AILimiter != nil {
		aiLimit = middleware.RateLimit(deps.AILimiter)
	}

	registerAccountRoutes(api, service.Account, service.Journal)
	registerJournalRoutes(api, service.Journal)
	registerContactRoutes(api, service.Contact)
	registerInvoiceRoutes(api, service.Invoice)
	registerReconciliationRoutes(api, service.Reconciliation)
	registerReportingRoutes(api, service.Reporting, clock)
	registerAdvisoryRoutes(api, service.Advisory, aiLimit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
