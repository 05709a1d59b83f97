package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prohmpiriya/charity-events/internal/handler"
	"github.com/prohmpiriya/charity-events/internal/repository"
	"github.com/prohmpiriya/charity-events/internal/service"
	"github.com/prohmpiriya/charity-events/pkg/logger"
	"github.com/prohmpiriya/charity-events/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var routerToday = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

type testServer struct {
	engine  *gin.Engine
	catalog *repository.MemoryCatalog
	logs    *observer.ObservedLogs
}

func newTestServer(t *testing.T, debug bool) *testServer {
	t.Helper()
	return newTestServerWith(t, debug, Options{CORS: middleware.DefaultCORSConfig(), DisableLogs: true})
}

func newTestServerWith(t *testing.T, debug bool, opts Options) *testServer {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	catalog := repository.NewSampleCatalog(routerToday)
	svc := service.NewCatalogService(catalog, catalog,
		service.WithClock(func() time.Time { return routerToday }),
		service.WithLocation(time.UTC),
	)
	errs := handler.NewErrorReporter(log, debug, nil)
	opts.Logger = log

	engine := New(&Handlers{
		Events:  handler.NewEventHandler(svc, errs),
		Catalog: handler.NewCatalogHandler(svc, errs),
		Info:    handler.NewInfoHandler("charity-events", "1.0.0", nil, errs),
		Errors:  errs,
	}, opts)

	return &testServer{engine: engine, catalog: catalog, logs: logs}
}

// envelope mirrors the JSON envelope with data left raw
type envelope struct {
	Success bool               `json:"success"`
	Count   *int               `json:"count"`
	Filters map[string]*string `json:"filters"`
	Data    json.RawMessage    `json:"data"`
	Message string             `json:"message"`
	Error   string             `json:"error"`
}

func (s *testServer) get(t *testing.T, target string) (int, envelope, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return w.Code, env, raw
}

type eventRow struct {
	EventID     int64   `json:"event_id"`
	EventName   string  `json:"event_name"`
	EventDate   string  `json:"event_date"`
	EventTime   *string `json:"event_time"`
	City        string  `json:"city"`
	IsSuspended bool    `json:"is_suspended"`
	Status      string  `json:"status"`
}

func rows(t *testing.T, env envelope) []eventRow {
	t.Helper()
	var out []eventRow
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func rowIDs(rs []eventRow) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.EventID
	}
	return out
}

func TestListEvents(t *testing.T) {
	s := newTestServer(t, false)

	code, env, raw := s.get(t, "/api/events")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 4, *env.Count)
	assert.NotContains(t, raw, "filters")

	list := rows(t, env)
	assert.Equal(t, []int64{
		repository.SampleFoodDriveID,
		repository.SampleFunRunID,
		repository.SamplePicnicID,
		repository.SampleGalaID,
	}, rowIDs(list))
	for _, r := range list {
		assert.Contains(t, []string{"upcoming", "ongoing"}, r.Status)
		assert.GreaterOrEqual(t, r.EventDate, "2025-05-20")
	}
}

func TestSearchEvents_NoFiltersEqualsList(t *testing.T) {
	s := newTestServer(t, false)

	_, listed, _ := s.get(t, "/api/events")
	code, searched, _ := s.get(t, "/api/events/search")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, rowIDs(rows(t, listed)), rowIDs(rows(t, searched)))
	assert.Equal(t, map[string]*string{"date": nil, "city": nil, "category": nil}, searched.Filters)
}

func TestSearchEvents_Filters(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"city substring is case-insensitive", "?city=spring", []int64{repository.SampleFoodDriveID, repository.SampleFunRunID}},
		{"exact date", "?date=2025-06-02", []int64{repository.SampleGalaID}},
		{"category", "?category=2", []int64{repository.SampleFunRunID}},
		{"combined", "?date=2025-06-01&city=port", []int64{repository.SamplePicnicID}},
		{"malformed date yields no rows", "?date=June", []int64{}},
		{"malformed category yields no rows", "?category=health", []int64{}},
		{"blank values are ignored", "?city=&date=%20", []int64{
			repository.SampleFoodDriveID,
			repository.SampleFunRunID,
			repository.SamplePicnicID,
			repository.SampleGalaID,
		}},
		{"unknown keys are ignored", "?venue=hall&city=boston", []int64{repository.SampleGalaID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env, _ := s.get(t, "/api/events/search"+tt.query)

			assert.Equal(t, http.StatusOK, code)
			assert.True(t, env.Success)
			assert.Equal(t, tt.want, rowIDs(rows(t, env)))
			assert.Equal(t, len(tt.want), *env.Count)
		})
	}
}

func TestSearchEvents_FilterEcho(t *testing.T) {
	s := newTestServer(t, false)

	_, env, raw := s.get(t, "/api/events/search?city=Boston")

	filters, ok := raw["filters"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, filters, 3)
	assert.Contains(t, filters, "date")
	assert.Nil(t, filters["date"])
	assert.Nil(t, filters["category"])
	require.NotNil(t, env.Filters["city"])
	assert.Equal(t, "Boston", *env.Filters["city"])
}

func TestSearchRouteNeverReachesDetail(t *testing.T) {
	s := newTestServer(t, false)

	code, env, raw := s.get(t, "/api/events/search")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Contains(t, raw, "filters")
	assert.NotEqual(t, "Event not found", env.Message)
}

func TestGetEvent(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("found", func(t *testing.T) {
		code, env, _ := s.get(t, "/api/events/1")

		assert.Equal(t, http.StatusOK, code)
		var detail map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, "Spring Fun Run", detail["event_name"])
		assert.Equal(t, "09:00:00", detail["event_time"])
		assert.Equal(t, "25.00", detail["ticket_price"])
		assert.Equal(t, "info@hopefoundation.org", detail["contact_email"])
		assert.Equal(t, "Health & Wellness", detail["category_name"])
		assert.Equal(t, float64(200), detail["max_participants"])
	})

	t.Run("suspended event bypasses eligibility", func(t *testing.T) {
		code, env, _ := s.get(t, "/api/events/3")

		assert.Equal(t, http.StatusOK, code)
		var detail eventRow
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.True(t, detail.IsSuspended)
	})

	t.Run("past and completed events are still viewable", func(t *testing.T) {
		code, _, _ := s.get(t, "/api/events/4")
		assert.Equal(t, http.StatusOK, code)
		code, _, _ = s.get(t, "/api/events/5")
		assert.Equal(t, http.StatusOK, code)
	})

	for _, id := range []string{"999", "abc", "1.5"} {
		t.Run("not found "+id, func(t *testing.T) {
			code, env, raw := s.get(t, "/api/events/"+id)

			assert.Equal(t, http.StatusNotFound, code)
			assert.False(t, env.Success)
			assert.Equal(t, "Event not found", env.Message)
			assert.NotContains(t, raw, "error")
			assert.NotContains(t, raw, "data")
		})
	}

	t.Run("id beyond integer column range is not found without a query", func(t *testing.T) {
		before := s.catalog.Queries()
		code, env, _ := s.get(t, "/api/events/9999999999")

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Event not found", env.Message)
		assert.Equal(t, before, s.catalog.Queries())
	})

	t.Run("category beyond integer column range is an empty search", func(t *testing.T) {
		code, env, _ := s.get(t, "/api/events/search?category=9999999999")

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)
		assert.Equal(t, 0, *env.Count)
		require.NotNil(t, env.Filters["category"])
		assert.Equal(t, "9999999999", *env.Filters["category"])
	})
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t, false)

	code, env, _ := s.get(t, "/api/categories")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, *env.Count)

	var categories []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Equal(t, "Arts & Culture", categories[0]["category_name"])
	assert.Equal(t, "Health & Wellness", categories[2]["category_name"])
}

func TestListCities(t *testing.T) {
	s := newTestServer(t, false)

	code, env, _ := s.get(t, "/api/cities")

	assert.Equal(t, http.StatusOK, code)
	var cities []string
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	assert.Equal(t, []string{"Boston", "Portland", "Springfield"}, cities)
	assert.Equal(t, 3, *env.Count)
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, false)

	code, env, _ := s.get(t, "/")

	assert.Equal(t, http.StatusOK, code)
	var info handler.ServiceInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "charity-events", info.Name)
	assert.Equal(t, "GET /api/events/:id", info.Endpoints["eventDetails"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, false)

	code, env, _ := s.get(t, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Requested resource not found", env.Message)
}

func TestStoreFailure(t *testing.T) {
	boom := errors.New("dial tcp 127.0.0.1:5432: connection refused")

	t.Run("detail hidden outside debug", func(t *testing.T) {
		s := newTestServer(t, false)
		s.catalog.FailWith(boom)

		for _, path := range []string{"/api/events", "/api/events/search?city=x", "/api/events/1", "/api/categories", "/api/cities"} {
			code, env, raw := s.get(t, path)

			assert.Equal(t, http.StatusInternalServerError, code, path)
			assert.False(t, env.Success)
			assert.Equal(t, "Server error", env.Message)
			assert.NotContains(t, raw, "error")
		}
		assert.Equal(t, 5, s.logs.FilterMessage("store operation failed").Len())
	})

	t.Run("detail shown in debug", func(t *testing.T) {
		s := newTestServer(t, true)
		s.catalog.FailWith(boom)

		code, env, _ := s.get(t, "/api/events/1")

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Contains(t, env.Error, "connection refused")
	})

	t.Run("logged once at error with access logging on", func(t *testing.T) {
		s := newTestServerWith(t, false, Options{CORS: middleware.DefaultCORSConfig(), AccessLog: middleware.DefaultAccessLogConfig()})
		s.catalog.FailWith(boom)

		code, _, _ := s.get(t, "/api/events")
		assert.Equal(t, http.StatusInternalServerError, code)

		errorEntries := s.logs.FilterLevelExact(zapcore.ErrorLevel).All()
		require.Len(t, errorEntries, 1)
		assert.Equal(t, "store operation failed", errorEntries[0].Message)

		requests := s.logs.FilterMessage("request").All()
		require.Len(t, requests, 1)
		assert.Equal(t, zapcore.WarnLevel, requests[0].Level)
		assert.Equal(t, int64(http.StatusInternalServerError), requests[0].ContextMap()["status"])
		assert.NotContains(t, requests[0].ContextMap(), "error")
	})

	t.Run("store recovers without restart", func(t *testing.T) {
		s := newTestServer(t, false)
		s.catalog.FailWith(boom)
		code, _, _ := s.get(t, "/api/events")
		assert.Equal(t, http.StatusInternalServerError, code)

		s.catalog.FailWith(nil)
		code, _, _ = s.get(t, "/api/events")
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestOneQueryPerRequest(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/api/events", "/api/events/search?city=spring", "/api/events/2", "/api/categories", "/api/cities"} {
		before := s.catalog.Queries()
		s.get(t, path)
		assert.Equal(t, before+1, s.catalog.Queries(), path)
	}
}

func TestPanicRecovery(t *testing.T) {
	s := newTestServer(t, false)
	s.engine.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	code, env, _ := s.get(t, "/boom")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, 1, s.logs.FilterMessage("unhandled fault").Len())
}

func TestReady_NoDatabase(t *testing.T) {
	s := newTestServer(t, false)

	code, env, _ := s.get(t, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, env.Success)

	code, _, _ = s.get(t, "/health")
	assert.Equal(t, http.StatusOK, code)
}

func TestTrustedProxies(t *testing.T) {
	t.Run("invalid entries fall back to the peer address", func(t *testing.T) {
		s := newTestServerWith(t, false, Options{
			CORS:           middleware.DefaultCORSConfig(),
			DisableLogs:    true,
			TrustedProxies: []string{"not-an-ip"},
		})

		assert.Equal(t, 1, s.logs.FilterMessage("Ignoring invalid trusted proxies").Len())
		code, _, _ := s.get(t, "/api/events")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("forwarded address honoured only from a trusted peer", func(t *testing.T) {
		s := newTestServerWith(t, false, Options{
			CORS:           middleware.DefaultCORSConfig(),
			TrustedProxies: []string{"192.0.2.0/24"},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cities", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.5")
		s.engine.ServeHTTP(httptest.NewRecorder(), req)

		requests := s.logs.FilterMessage("request").All()
		require.Len(t, requests, 1)
		assert.Equal(t, "203.0.113.5", requests[0].ContextMap()["client_ip"])
	})
}
