package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prohmpiriya/charity-events/pkg/logger"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/events", map[string]string{"Origin": "http://example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/api/events", map[string]string{"Origin": "http://example.com"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_AllowList(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://allowed.example.com"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/events", map[string]string{"Origin": "http://allowed.example.com"})
	assert.Equal(t, "http://allowed.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = serve(r, http.MethodGet, "/api/events", map[string]string{"Origin": "http://evil.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Generated(t *testing.T) {
	var fromGin, fromCtx string

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromGin = GetRequestID(c)
		fromCtx = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/", nil)

	require.NotEmpty(t, fromGin)
	assert.Equal(t, fromGin, fromCtx)
	assert.Equal(t, fromGin, w.Header().Get(HeaderRequestID))
	assert.Len(t, fromGin, 36)
}

func TestRequestID_Propagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(RequestID(), AccessLog(log, DefaultAccessLogConfig()))
	r.GET("/api/events/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, 0, logs.Len())

	serve(r, http.MethodGet, "/api/events/99?x=1", map[string]string{HeaderRequestID: "req-1"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/events/:id", fields["route"])
	assert.Equal(t, "x=1", fields["query"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestMetrics(t *testing.T) {
	_, err := telemetry.Init(context.Background(), nil)
	require.NoError(t, err)

	m, err := telemetry.NewHTTPMetrics()
	require.NoError(t, err)

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessLog_ServerErrorIsWarnWithoutCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(AccessLog(log, DefaultAccessLogConfig()))
	r.GET("/api/events", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	serve(r, http.MethodGet, "/api/events", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.NotContains(t, entries[0].ContextMap(), "errors")
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestAccessLog_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		want    string
	}{
		{"forwarded header ignored without trusted proxies", nil, "192.0.2.1"},
		{"forwarded header honoured from a trusted proxy", []string{"192.0.2.1"}, "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			log := &logger.Logger{Logger: zap.New(core)}

			r := gin.New()
			require.NoError(t, r.SetTrustedProxies(tt.trusted))
			r.Use(AccessLog(log, DefaultAccessLogConfig()))
			r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

			// httptest requests come from 192.0.2.1
			serve(r, http.MethodGet, "/api/events", map[string]string{"X-Forwarded-For": "203.0.113.5"})

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.want, logs.All()[0].ContextMap()["client_ip"])
		})
	}
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		_ = tp.Shutdown(context.Background())
	})
	_, err := telemetry.Init(context.Background(), nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Tracing())
	r.GET("/api/events/:id", func(c *gin.Context) {
		_, span := telemetry.StartStoreSpan(c.Request.Context(), "get_event")
		span.End()
		c.Status(http.StatusInternalServerError)
	})

	w := serve(r, http.MethodGet, "/api/events/7", nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	store, server := ended[0], ended[1]
	assert.Equal(t, "GET /api/events/:id", server.Name())
	assert.Equal(t, trace.SpanKindServer, server.SpanKind())
	assert.Equal(t, codes.Error, server.Status().Code)
	assert.Equal(t, server.SpanContext().SpanID(), store.Parent().SpanID())
	assert.Equal(t, server.SpanContext().TraceID().String(), w.Header().Get(HeaderTraceID))
}

func TestTracing_NoopWithoutTelemetry(t *testing.T) {
	_, err := telemetry.Init(context.Background(), nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Tracing())
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderTraceID))
}
