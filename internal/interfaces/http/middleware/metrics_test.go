package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newMetricsEngine(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	engine := gin.New()
	engine.Use(HTTPMetrics(HTTPMetricsConfig{Meter: provider.Meter("http"), Enabled: true}))
	engine.GET("/api/v1/dashboard/products/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	engine.POST("/api/v1/dashboard/products", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	engine.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unhealthy"})
	})
	return engine, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func attrValue(set attribute.Set, key attribute.Key) string {
	v, ok := set.Value(key)
	if !ok {
		return ""
	}
	return v.Emit()
}

func TestHTTPMetrics_CountsByRouteAndStatus(t *testing.T) {
	engine, reader := newMetricsEngine(t)

	for _, path := range []string{"/api/v1/dashboard/products/a1", "/api/v1/dashboard/products/b2", "/api/v1/dashboard/products/missing"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/products", strings.NewReader(`{"name":"Vaso"}`)))

	metrics := collect(t, reader)
	total, ok := metrics["http_server_request_total"]
	require.True(t, ok)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		key := attrValue(dp.Attributes, AttrHTTPMethod) + " " +
			attrValue(dp.Attributes, AttrHTTPRoute) + " " +
			attrValue(dp.Attributes, AttrHTTPStatusCode)
		counts[key] += dp.Value
	}

	// Path parameters collapse into the route pattern
	assert.Equal(t, int64(2), counts["GET /api/v1/dashboard/products/:id 200"])
	assert.Equal(t, int64(1), counts["GET /api/v1/dashboard/products/:id 404"])
	assert.Equal(t, int64(1), counts["POST /api/v1/dashboard/products 201"])
}

func TestHTTPMetrics_DurationUsesStatusClass(t *testing.T) {
	engine, reader := newMetricsEngine(t)
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	duration, ok := collect(t, reader)["http_server_request_duration_seconds"]
	require.True(t, ok)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)

	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(1), dp.Count)
	assert.Equal(t, "5xx", attrValue(dp.Attributes, AttrHTTPStatusClass))
	assert.Equal(t, httpDurationBuckets, dp.Bounds)
}

func TestHTTPMetrics_BodySizes(t *testing.T) {
	engine, reader := newMetricsEngine(t)
	body := `{"name":"Vestido floral","price":"129.90"}`
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/products", strings.NewReader(body)))

	metrics := collect(t, reader)

	reqSize := metrics["http_server_request_size_bytes"].Data.(metricdata.Histogram[float64])
	require.Len(t, reqSize.DataPoints, 1)
	assert.Equal(t, float64(len(body)), reqSize.DataPoints[0].Sum)

	respSize := metrics["http_server_response_size_bytes"].Data.(metricdata.Histogram[float64])
	require.Len(t, respSize.DataPoints, 1)
	assert.Equal(t, float64(len(`{"ok":true}`)), respSize.DataPoints[0].Sum)
}

func TestHTTPMetrics_ActiveRequestsReturnToZero(t *testing.T) {
	engine, reader := newMetricsEngine(t)
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/products/a1", nil))

	active := collect(t, reader)["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.Len(t, active.DataPoints, 1)
	assert.Zero(t, active.DataPoints[0].Value)
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	engine, reader := newMetricsEngine(t)
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	total := collect(t, reader)["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.Len(t, total.DataPoints, 1)
	assert.Equal(t, "unknown", attrValue(total.DataPoints[0].Attributes, AttrHTTPRoute))
}

func TestHTTPMetrics_DisabledOrNilMeterPassesThrough(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	for name, mw := range map[string]gin.HandlerFunc{
		"disabled":  HTTPMetrics(HTTPMetricsConfig{Meter: provider.Meter("http"), Enabled: false}),
		"nil meter": HTTPMetrics(HTTPMetricsConfig{Enabled: true}),
	} {
		t.Run(name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(mw)
			engine.GET("/api/v1/plans", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}

	assert.Empty(t, collect(t, reader))
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	tests := map[int]string{
		http.StatusOK:                  "2xx",
		http.StatusNoContent:           "2xx",
		http.StatusFound:               "3xx",
		http.StatusUnprocessableEntity: "4xx",
		http.StatusTooManyRequests:     "4xx",
		http.StatusBadGateway:          "5xx",
		101:                            "other",
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPMetricsStatusGroup(code), "status %d", code)
	}
}

func TestDefaultHTTPMetricsConfig(t *testing.T) {
	cfg := DefaultHTTPMetricsConfig()
	assert.True(t, cfg.Enabled)
	assert.Nil(t, cfg.Meter)
}
