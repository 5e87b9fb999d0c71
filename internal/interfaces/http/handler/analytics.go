package handler

import (
	"net/http"

	appreport "github.com/citytickets/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the sales dashboard
type AnalyticsHandler struct {
	BaseHandler
	analytics *appreport.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler
func NewAnalyticsHandler(analytics *appreport.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RegisterRoutes registers analytics routes; the group must already
// require a staff session
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/sales", h.Sales)
		analytics.GET("/sales/export.csv", h.ExportCSV)
	}
}

// Sales handles GET /analytics/sales?period=&mode=
// Period is "all" or a trailing day count; the service validates both.
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	mode, err := appreport.ResolveMode(c.Query("mode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	overview, err := h.analytics.Build(c.Request.Context(), c.Query("period"), mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// ExportCSV handles GET /analytics/sales/export.csv?period=&mode=
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	mode, err := appreport.ResolveMode(c.Query("mode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	data, err := h.analytics.ExportCSV(c.Request.Context(), c.Query("period"), mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
