package handler

import (
	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	BaseHandler
	dashboardService *catalogapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *catalogapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Product and category counts with the plan's limits, computed on every request
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.DashboardStats}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), session.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
