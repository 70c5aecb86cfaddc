package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nuam/internal/services"
)

// DashboardHandler renders the landing page after login.
type DashboardHandler struct {
	reportService services.ReportServicer
	marketService services.MarketServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService services.ReportServicer, marketService services.MarketServicer) *DashboardHandler {
	return &DashboardHandler{reportService: reportService, marketService: marketService}
}

// Dashboard shows the registry counters per market and the live market
// snapshots. Quote failures only blank the affected market.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard()
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Summary":  summary,
		"Mercados": h.marketService.Snapshots(c.Request.Context()),
	})
}
