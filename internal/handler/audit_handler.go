package handler

import (
	"net/http"
	"strconv"

	"mediabuy/internal/middleware"
	"mediabuy/internal/service"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	jwtSecret    []byte
}

func NewAuditHandler(auditService service.AuditService, jwtSecret []byte) *AuditHandler {
	return &AuditHandler{auditService: auditService, jwtSecret: jwtSecret}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audit-logs", middleware.RequireAuth(h.jwtSecret), h.ListAuditLogs)
}

// ListAuditLogs returns a paginated audit trail of workflow mutations
// @Summary      List audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  response.Error
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Err("internal server error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_logs": logs,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}
