package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// HeaderTraceID exposes the server span's trace id to callers
const HeaderTraceID = "X-Trace-ID"

// Tracing starts a server span per request, continuing any incoming trace context.
// Store spans started by the handlers become its children.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		name := c.Request.Method + " " + route
		if route == "" {
			name = c.Request.Method
		}

		ctx, span := telemetry.StartSpan(ctx, name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				telemetry.MethodAttr(c.Request.Method),
				telemetry.RouteAttr(route),
			),
		)
		defer span.End()

		if traceID := telemetry.GetTraceID(ctx); traceID != "" {
			c.Header(HeaderTraceID, traceID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(telemetry.StatusCodeAttr(status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
