package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricOpts holds options for creating metrics
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter wraps an OTel counter
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter metric
func NewCounter(opts MetricOpts) (*Counter, error) {
	counter, err := GetMeter().Int64Counter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter}, nil
}

// Add increments the counter by the given value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by 1
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram wraps an OTel float histogram
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a histogram, with explicit bucket boundaries when given
func NewHistogram(opts MetricOpts, boundaries ...float64) (*Histogram, error) {
	options := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(boundaries...))
	}

	histogram, err := GetMeter().Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram}, nil
}

// Record records a value in the histogram
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// UpDownCounter wraps an OTel up-down counter
type UpDownCounter struct {
	counter metric.Int64UpDownCounter
}

// NewUpDownCounter creates a new up-down counter metric
func NewUpDownCounter(opts MetricOpts) (*UpDownCounter, error) {
	counter, err := GetMeter().Int64UpDownCounter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &UpDownCounter{counter: counter}, nil
}

// Inc increments the counter by 1
func (c *UpDownCounter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Dec decrements the counter by 1
func (c *UpDownCounter) Dec(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, -1, metric.WithAttributes(attrs...))
}

// Latency buckets in milliseconds
var latencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// HTTPMetrics groups the instruments recorded per API request
type HTTPMetrics struct {
	Requests    *Counter
	Duration    *Histogram
	InFlight    *UpDownCounter
	StoreErrors *Counter
}

// NewHTTPMetrics registers the request instruments on the global meter
func NewHTTPMetrics() (*HTTPMetrics, error) {
	requests, err := NewCounter(MetricOpts{
		Name:        "http.server.requests",
		Description: "Number of API requests handled",
		Unit:        "{request}",
	})
	if err != nil {
		return nil, fmt.Errorf("requests counter: %w", err)
	}

	duration, err := NewHistogram(MetricOpts{
		Name:        "http.server.duration",
		Description: "API request latency",
		Unit:        "ms",
	}, latencyBuckets...)
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}

	inFlight, err := NewUpDownCounter(MetricOpts{
		Name:        "http.server.active_requests",
		Description: "Requests currently being served",
		Unit:        "{request}",
	})
	if err != nil {
		return nil, fmt.Errorf("in-flight counter: %w", err)
	}

	storeErrors, err := NewCounter(MetricOpts{
		Name:        "catalog.store.errors",
		Description: "Catalog queries that failed at the data store",
		Unit:        "{error}",
	})
	if err != nil {
		return nil, fmt.Errorf("store error counter: %w", err)
	}

	return &HTTPMetrics{
		Requests:    requests,
		Duration:    duration,
		InFlight:    inFlight,
		StoreErrors: storeErrors,
	}, nil
}

// Common metric attribute keys
const (
	AttrMethod      = "http.method"
	AttrRoute       = "http.route"
	AttrStatusCode  = "http.status_code"
	AttrErrorType   = "error.type"
	AttrDBSystem    = "db.system"
	AttrDBOperation = "db.operation"
	AttrEventID     = "event.id"
	AttrResultCount = "catalog.result_count"
)

func MethodAttr(method string) attribute.KeyValue {
	return attribute.String(AttrMethod, method)
}

// RouteAttr uses the matched route template, never the raw path, to bound cardinality
func RouteAttr(route string) attribute.KeyValue {
	if route == "" {
		route = "unmatched"
	}
	return attribute.String(AttrRoute, route)
}

func StatusCodeAttr(code int) attribute.KeyValue {
	return attribute.Int(AttrStatusCode, code)
}

func ErrorTypeAttr(errType string) attribute.KeyValue {
	return attribute.String(AttrErrorType, errType)
}

func EventIDAttr(id int64) attribute.KeyValue {
	return attribute.Int64(AttrEventID, id)
}

func ResultCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrResultCount, n)
}
