package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appdashboard "github.com/kirana/backend/internal/application/dashboard"
)

// DashboardHandler serves storefront reporting endpoints
type DashboardHandler struct {
	BaseHandler
	dashboard *appdashboard.Service
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(dashboard *appdashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{BaseHandler: NewBaseHandler(logger), dashboard: dashboard}
}

// Stats returns today's figures and catalog health
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	resp, err := h.dashboard.GetStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecentBills returns the newest bills
// GET /api/dashboard/recent-bills
func (h *DashboardHandler) RecentBills(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.dashboard.GetRecentBills(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": resp})
}
