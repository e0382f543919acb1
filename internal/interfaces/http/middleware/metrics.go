package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	AttrHTTPMethod      = attribute.Key("http.method")
	AttrHTTPRoute       = attribute.Key("http.route")
	AttrHTTPStatusCode  = attribute.Key("http.status_code")
	AttrHTTPStatusClass = attribute.Key("http.status_class")
)

// Latency buckets in seconds
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Request sizes reach tens of megabytes on image uploads
var (
	requestSizeBuckets  = []float64{100, 1e3, 1e4, 1e5, 1e6, 5e6, 25e6, 80e6}
	responseSizeBuckets = []float64{100, 500, 1e3, 5e3, 1e4, 5e4, 1e5, 5e5, 1e6}
)

type HTTPMetricsConfig struct {
	Meter   metric.Meter // nil disables collection
	Enabled bool
}

func DefaultHTTPMetricsConfig() HTTPMetricsConfig {
	return HTTPMetricsConfig{Enabled: true}
}

type httpMetrics struct {
	requests     metric.Int64Counter
	duration     metric.Float64Histogram
	requestSize  metric.Float64Histogram
	responseSize metric.Float64Histogram
	inFlight     metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	var m httpMetrics
	var errs [5]error
	m.requests, errs[0] = meter.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"))
	m.duration, errs[1] = meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(httpDurationBuckets...))
	m.requestSize, errs[2] = meter.Float64Histogram("http_server_request_size_bytes",
		metric.WithDescription("HTTP request body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(requestSizeBuckets...))
	m.responseSize, errs[3] = meter.Float64Histogram("http_server_response_size_bytes",
		metric.WithDescription("HTTP response body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(responseSizeBuckets...))
	m.inFlight, errs[4] = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in flight"),
		metric.WithUnit("{request}"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return &m, nil
}

// HTTPMetrics records request count, latency, body sizes and in-flight
// requests by method and route pattern. Path parameters never become
// label values.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	passThrough := func(c *gin.Context) { c.Next() }
	if !cfg.Enabled || cfg.Meter == nil {
		return passThrough
	}
	m, err := newHTTPMetrics(cfg.Meter)
	if err != nil {
		otel.Handle(err)
		return passThrough
	}
	return m.handle
}

func (m *httpMetrics) handle(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	m.inFlight.Add(ctx, 1)
	c.Next()
	m.inFlight.Add(ctx, -1)

	route := c.FullPath()
	if route == "" {
		route = "unknown"
	}
	method := AttrHTTPMethod.String(c.Request.Method)
	status := c.Writer.Status()
	byRoute := metric.WithAttributes(method, AttrHTTPRoute.String(route))

	m.requests.Add(ctx, 1, metric.WithAttributes(method, AttrHTTPRoute.String(route), AttrHTTPStatusCode.Int(status)))
	m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		method, AttrHTTPRoute.String(route), AttrHTTPStatusClass.String(HTTPMetricsStatusGroup(status))))
	if n := c.Request.ContentLength; n > 0 {
		m.requestSize.Record(ctx, float64(n), byRoute)
	}
	if n := c.Writer.Size(); n > 0 {
		m.responseSize.Record(ctx, float64(n), byRoute)
	}
}

// HTTPMetricsStatusGroup maps a status code to its class, such as "4xx"
func HTTPMetricsStatusGroup(statusCode int) string {
	switch statusCode / 100 {
	case 2:
		return "2xx"
	case 3:
		return "3xx"
	case 4:
		return "4xx"
	case 5:
		return "5xx"
	default:
		return "other"
	}
}
