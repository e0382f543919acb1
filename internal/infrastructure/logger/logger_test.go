package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func fieldMap(entry observer.LoggedEntry) map[string]any {
	return entry.ContextMap()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestNew_WritesJSONToFileAndExtraCores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	extraCore, extraLogs := observer.New(zapcore.InfoLevel)

	l, err := New(Config{Level: "info", Format: "json", Output: path}, extraCore)
	require.NoError(t, err)

	l.Info("hello", zap.String("k", "v"))
	l.Debug("hidden")
	require.NoError(t, l.Sync())

	assert.Equal(t, 1, extraLogs.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	base, logs := observed(zapcore.InfoLevel)
	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-9", GetUserID(ctx))

	L(ctx).Info("saved")

	require.Equal(t, 1, logs.Len())
	fields := fieldMap(logs.All()[0])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-9", fields["user_id"])
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}

func TestEnrich_AddsTraceContext(t *testing.T) {
	base, logs := observed(zapcore.InfoLevel)
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	Enrich(ctx, base).Info("traced")

	fields := fieldMap(logs.All()[0])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base, logs := observed(zapcore.DebugLevel)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "rid"); c.Next() })
	r.Use(GinMiddleware(base, "/api/v1/health"), Recovery(base))
	r.GET("/api/v1/dashboard/products/:id", func(c *gin.Context) {
		FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/dashboard/products/42", "/missing", "/panic", "/api/v1/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	access := logs.FilterMessage("HTTP Request").All()
	levels := make([]zapcore.Level, 0, len(access))
	for _, e := range access {
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}, levels, "healthy probes stay quiet")
	assert.Equal(t, "/api/v1/dashboard/products/:id", fieldMap(access[0])["route"])
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())

	inside := logs.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	assert.Equal(t, "rid", fieldMap(inside[0])["request_id"])
}

func TestGormLogger_Trace(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(base, gormlogger.Info, 10*time.Millisecond)
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sqlFn, nil)
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	gl.Trace(context.Background(), time.Now(), sqlFn, errors.New("syntax"))
	gl.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

	assert.Equal(t, 1, logs.FilterMessage("SQL Query").Len())
	assert.Equal(t, 1, logs.FilterMessage("SQL Error").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	silent := gl.LogMode(gormlogger.Silent)
	before := logs.Len()
	silent.Trace(context.Background(), time.Now(), sqlFn, errors.New("x"))
	assert.Equal(t, before, logs.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
