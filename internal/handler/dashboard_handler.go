package handler

import (
	"net/http"

	"mediabuy/internal/service"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Dashboard)
}

// Dashboard serves the landing page with per-entity counts, as HTML or JSON.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	r := newResponder(c)

	counts, err := h.dashboardService.GetCounts(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}

	if r.IsJSON() {
		c.JSON(http.StatusOK, counts)
		return
	}

	data := flashFrom(c)
	data["Stats"] = counts
	c.HTML(http.StatusOK, "index.html", data)
}
