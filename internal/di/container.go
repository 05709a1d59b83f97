package di

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/charity-events/internal/handler"
	"github.com/prohmpiriya/charity-events/internal/repository"
	"github.com/prohmpiriya/charity-events/internal/router"
	"github.com/prohmpiriya/charity-events/internal/service"
	"github.com/prohmpiriya/charity-events/pkg/config"
	"github.com/prohmpiriya/charity-events/pkg/database"
	"github.com/prohmpiriya/charity-events/pkg/logger"
	"github.com/prohmpiriya/charity-events/pkg/middleware"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// Container holds all dependencies for the catalog API
type Container struct {
	// Infrastructure
	DB      *database.PostgresDB
	Logger  *logger.Logger
	Metrics *telemetry.HTTPMetrics

	// Repositories
	EventRepo    repository.EventRepository
	CategoryRepo repository.CategoryRepository

	// Services
	CatalogService service.CatalogService

	// Handlers
	Errors         *handler.ErrorReporter
	EventHandler   *handler.EventHandler
	CatalogHandler *handler.CatalogHandler
	InfoHandler    *handler.InfoHandler

	Engine *gin.Engine
}

// ContainerConfig contains configuration for building the container.
// When EventRepo and CategoryRepo are nil they are backed by DB.
type ContainerConfig struct {
	App          *config.Config
	DB           *database.PostgresDB
	Logger       *logger.Logger
	Metrics      *telemetry.HTTPMetrics
	EventRepo    repository.EventRepository
	CategoryRepo repository.CategoryRepository
	Location     *time.Location
	Clock        func() time.Time
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:           cfg.DB,
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
		EventRepo:    cfg.EventRepo,
		CategoryRepo: cfg.CategoryRepo,
	}
	if c.Logger == nil {
		c.Logger = logger.NewNop()
	}

	// Initialize repositories
	if c.EventRepo == nil {
		c.EventRepo = repository.NewPostgresEventRepository(c.DB.Pool())
	}
	if c.CategoryRepo == nil {
		c.CategoryRepo = repository.NewPostgresCategoryRepository(c.DB.Pool())
	}

	// Initialize services
	opts := []service.Option{service.WithLocation(cfg.Location)}
	if cfg.Clock != nil {
		opts = append(opts, service.WithClock(cfg.Clock))
	}
	c.CatalogService = service.NewCatalogService(c.EventRepo, c.CategoryRepo, opts...)

	// Initialize handlers
	c.Errors = handler.NewErrorReporter(c.Logger, cfg.App.App.Debug, c.Metrics)
	c.EventHandler = handler.NewEventHandler(c.CatalogService, c.Errors)
	c.CatalogHandler = handler.NewCatalogHandler(c.CatalogService, c.Errors)

	var store handler.HealthChecker
	if c.DB != nil {
		store = c.DB
	}
	c.InfoHandler = handler.NewInfoHandler(cfg.App.App.Name, cfg.App.App.Version, store, c.Errors)

	// Initialize router
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.App.CORS.AllowOrigins
	c.Engine = router.New(&router.Handlers{
		Events:  c.EventHandler,
		Catalog: c.CatalogHandler,
		Info:    c.InfoHandler,
		Errors:  c.Errors,
	}, router.Options{
		Logger:    c.Logger,
		Metrics:   c.Metrics,
		CORS:      cors,
		AccessLog: middleware.DefaultAccessLogConfig(),

		TrustedProxies: cfg.App.Server.TrustedProxies,
	})

	return c
}
