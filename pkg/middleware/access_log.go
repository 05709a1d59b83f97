package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/charity-events/pkg/logger"
)

// AccessLogConfig controls which requests are written to the access log
type AccessLogConfig struct {
	SkipPaths []string
}

// DefaultAccessLogConfig skips the probe endpoints
func DefaultAccessLogConfig() AccessLogConfig {
	return AccessLogConfig{SkipPaths: []string{"/health", "/ready"}}
}

// AccessLog writes one structured entry per request once the handler chain has finished
func AccessLog(log *logger.Logger, config AccessLogConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
			zap.Int("size", c.Writer.Size()),
		}

		// the cause of a failure is logged by the handler that produced it
		l := log.WithContext(c.Request.Context())
		if status >= http.StatusBadRequest {
			l.Warn("request", fields...)
			return
		}
		l.Info("request", fields...)
	}
}
