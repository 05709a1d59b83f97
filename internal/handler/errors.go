package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/charity-events/pkg/logger"
	"github.com/prohmpiriya/charity-events/pkg/response"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// ErrorReporter turns failures into envelopes. Store failures are logged here and nowhere else.
type ErrorReporter struct {
	log     *logger.Logger
	debug   bool
	metrics *telemetry.HTTPMetrics
}

// NewErrorReporter creates an ErrorReporter; debug exposes error detail in responses
func NewErrorReporter(log *logger.Logger, debug bool, metrics *telemetry.HTTPMetrics) *ErrorReporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &ErrorReporter{log: log, debug: debug, metrics: metrics}
}

func (r *ErrorReporter) detail(err error) string {
	if !r.debug || err == nil {
		return ""
	}
	return err.Error()
}

// StoreFailure responds 500 for a failed data-store operation
func (r *ErrorReporter) StoreFailure(c *gin.Context, operation string, err error) {
	ctx := c.Request.Context()
	r.log.ErrorContext(ctx, "store operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	if r.metrics != nil {
		r.metrics.StoreErrors.Inc(ctx, telemetry.ErrorTypeAttr(operation))
	}
	c.JSON(http.StatusInternalServerError, response.ServerError(r.detail(err)))
}

// NoRoute responds 404 for any unmatched path
func (r *ErrorReporter) NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.NotFound(response.MessageNotFound))
}

// Recovery responds 500 for a panic raised while handling a request
func (r *ErrorReporter) Recovery(c *gin.Context, recovered interface{}) {
	err := fmt.Errorf("panic: %v", recovered)
	r.log.ErrorContext(c.Request.Context(), "unhandled fault",
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError(r.detail(err)))
}
