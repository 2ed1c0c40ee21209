package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"relief/pkg/roles"
	"relief/pkg/security"
)

type AuditLogHandler struct {
	repository *AuditLogRepository
	logger     *zap.Logger
}

func NewAuditLogHandler(r *AuditLogRepository, logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{repository: r, logger: logger}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit/:resource_type/:id", security.Authorize(roles.Admin), h.GetResourceLog)
}

func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	logs, err := h.repository.GetResourceLog(c.Request.Context(), id, c.Param("resource_type"))
	if err != nil {
		h.logger.Error("failed to fetch audit log", zap.Int("resource_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch audit log"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
