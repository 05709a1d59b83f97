package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/charity-events/pkg/response"
)

// ServiceInfo describes the API at the root path
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthChecker reports whether the data store answers queries
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// InfoHandler serves the service description and probes
type InfoHandler struct {
	info   ServiceInfo
	db     HealthChecker
	errs   *ErrorReporter
	probes time.Duration
}

// NewInfoHandler creates a new InfoHandler; db may be nil when no store is configured
func NewInfoHandler(name, version string, db HealthChecker, errs *ErrorReporter) *InfoHandler {
	return &InfoHandler{
		info: ServiceInfo{
			Name:    name,
			Version: version,
			Endpoints: map[string]string{
				"events":       "GET /api/events",
				"searchEvents": "GET /api/events/search?date=YYYY-MM-DD&city=&category=",
				"eventDetails": "GET /api/events/:id",
				"categories":   "GET /api/categories",
				"cities":       "GET /api/cities",
			},
		},
		db:     db,
		errs:   errs,
		probes: 2 * time.Second,
	}
}

// Root handles GET /
func (h *InfoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(h.info))
}

// Health handles GET /health - the process is up
func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready handles GET /ready - the data store answers
func (h *InfoHandler) Ready(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable("Database not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.probes)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		h.errs.log.WarnContext(ctx, "readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithDetail(response.MessageServiceUnhealthy, h.errs.detail(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready"}))
}
