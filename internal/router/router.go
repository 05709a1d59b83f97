package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/charity-events/internal/handler"
	"github.com/prohmpiriya/charity-events/pkg/logger"
	"github.com/prohmpiriya/charity-events/pkg/middleware"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// Handlers groups everything the routes dispatch to
type Handlers struct {
	Events  *handler.EventHandler
	Catalog *handler.CatalogHandler
	Info    *handler.InfoHandler
	Errors  *handler.ErrorReporter
}

// Options configures the middleware chain
type Options struct {
	Logger      *logger.Logger
	Metrics     *telemetry.HTTPMetrics
	CORS        middleware.CORSConfig
	AccessLog   middleware.AccessLogConfig
	DisableLogs bool

	// TrustedProxies may set X-Forwarded-For; when empty the peer address is the client IP
	TrustedProxies []string
}

// New builds the engine with middleware, routes and fallbacks
func New(h *Handlers, opts Options) *gin.Engine {
	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
		_ = engine.SetTrustedProxies(nil)
		if opts.Logger != nil {
			opts.Logger.Warn("Ignoring invalid trusted proxies", zap.Strings("proxies", opts.TrustedProxies), zap.Error(err))
		}
	}

	engine.Use(gin.CustomRecovery(h.Errors.Recovery))
	engine.Use(middleware.RequestID())
	if !opts.DisableLogs && opts.Logger != nil {
		engine.Use(middleware.AccessLog(opts.Logger, opts.AccessLog))
	}
	engine.Use(middleware.Tracing())
	if opts.Metrics != nil {
		engine.Use(middleware.Metrics(opts.Metrics))
	}
	engine.Use(middleware.CORSWithConfig(opts.CORS))

	SetupRoutes(engine, h)
	engine.NoRoute(h.Errors.NoRoute)

	return engine
}

// SetupRoutes registers the API routes.
// /api/events/search must be registered before /api/events/:id so "search" is never read as an id.
func SetupRoutes(engine *gin.Engine, h *Handlers) {
	engine.GET("/", h.Info.Root)
	engine.GET("/health", h.Info.Health)
	engine.GET("/ready", h.Info.Ready)

	api := engine.Group("/api")

	events := api.Group("/events")
	events.GET("", h.Events.List)
	events.GET("/search", h.Events.Search)
	events.GET("/:id", h.Events.GetByID)

	api.GET("/categories", h.Catalog.Categories)
	api.GET("/cities", h.Catalog.Cities)
}
