package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// checkDBSampleSize is how many categories check-db reads
	checkDBSampleSize = 5
	healthPingTimeout = 2 * time.Second
)

// DatabasePinger reports whether the database is reachable
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// CategorySampler reads a few categories regardless of owner
type CategorySampler interface {
	Sample(ctx context.Context, limit int) ([]catalog.Category, error)
}

// SystemHandler handles health and diagnostics endpoints
type SystemHandler struct {
	BaseHandler
	db        DatabasePinger
	sampler   CategorySampler
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db DatabasePinger, sampler CategorySampler, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		sampler:   sampler,
		version:   version,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Catalog API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Database string `json:"database" example:"connected"`
}

// CheckDBResponse is the raw check-db body
type CheckDBResponse struct {
	OK    bool                          `json:"ok"`
	Count int                           `json:"count,omitempty"`
	Data  []catalogapp.CategoryResponse `json:"data,omitempty"`
	Error string                        `json:"error,omitempty"`
}

// Health godoc
// @Summary      Health check
// @Description  Report service and database health
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "healthy", Database: "connected"}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Database health check failed", zap.Error(err))
		resp = HealthResponse{Status: "unhealthy", Database: "disconnected"}
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"success": status == http.StatusOK, "data": resp})
}

// CheckDB godoc
// @Summary      Database check
// @Description  Read up to five categories to prove the database answers queries
// @Tags         system
// @Produce      json
// @Success      200 {object} CheckDBResponse
// @Failure      500 {object} CheckDBResponse
// @Router       /check-db [get]
func (h *SystemHandler) CheckDB(c *gin.Context) {
	categories, err := h.sampler.Sample(c.Request.Context(), checkDBSampleSize)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("check-db query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, CheckDBResponse{OK: false, Error: err.Error()})
		return
	}

	data := make([]catalogapp.CategoryResponse, len(categories))
	for i := range categories {
		data[i] = catalogapp.ToCategoryResponse(&categories[i], nil)
	}
	c.JSON(http.StatusOK, CheckDBResponse{OK: true, Count: len(data), Data: data})
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Catalog API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=PingResponse}
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
