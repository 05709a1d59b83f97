package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// Metrics records request count, latency and concurrency on the given instruments
func Metrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		method := telemetry.MethodAttr(c.Request.Method)

		m.InFlight.Inc(ctx, method)
		start := time.Now()

		c.Next()

		m.InFlight.Dec(ctx, method)
		attrs := []attribute.KeyValue{
			method,
			telemetry.RouteAttr(c.FullPath()),
			telemetry.StatusCodeAttr(c.Writer.Status()),
		}
		m.Requests.Inc(ctx, attrs...)
		m.Duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs...)
	}
}
