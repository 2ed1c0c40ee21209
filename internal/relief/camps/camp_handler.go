package camps

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"relief/pkg/auditlog"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
	"relief/pkg/params"
	"relief/pkg/security"
)

type CampServiceInterface interface {
	GetCamp(ctx context.Context, id int) (*models.Camp, error)
	ListCamps(ctx context.Context, filter CampFilter) ([]models.Camp, error)
	CreateCamp(ctx context.Context, input CampInput, actorID *int) (*models.Camp, error)
	UpdateCamp(ctx context.Context, id int, input CampInput, actorID *int) (*models.Camp, error)
	DeleteCamp(ctx context.Context, id int, actorID *int) error
}

type CampHandler struct {
	service  CampServiceInterface
	auditLog auditlog.Auditor
	logger   *zap.Logger
}

func NewCampHandler(s CampServiceInterface, a auditlog.Auditor, logger *zap.Logger) *CampHandler {
	return &CampHandler{service: s, auditLog: a, logger: logger}
}

func (h *CampHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := security.RequirePermission(security.ResourceCamps, security.ActionRead)

	router.GET("/camps", read, h.GetCamps)
	router.GET("/camps/manager/:manager_id", read, h.GetCampsByManager)
	router.GET("/camps/:id", read, h.GetCamp)
	router.POST("/camps", security.RequirePermission(security.ResourceCamps, security.ActionCreate), h.CreateCamp)
	router.PUT("/camps/:id", security.RequirePermission(security.ResourceCamps, security.ActionUpdate), h.UpdateCamp)
	router.DELETE("/camps/:id", security.RequirePermission(security.ResourceCamps, security.ActionDelete), h.DeleteCamp)
}

func (h *CampHandler) GetCamp(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	camp, err := h.service.GetCamp(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get camp failed", err, "Unable to get camp")
		return
	}

	c.JSON(http.StatusOK, camp)
}

func (h *CampHandler) GetCamps(c *gin.Context) {
	var filter CampFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	h.list(c, filter)
}

func (h *CampHandler) GetCampsByManager(c *gin.Context) {
	managerID, ok := params.PositiveInt(c, "manager_id")
	if !ok {
		return
	}
	h.list(c, CampFilter{ManagerID: managerID})
}

func (h *CampHandler) list(c *gin.Context, filter CampFilter) {
	camps, err := h.service.ListCamps(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list camps failed", err, "Unable to list camps")
		return
	}

	c.JSON(http.StatusOK, camps)
}

func (h *CampHandler) CreateCamp(c *gin.Context) {
	var input CampInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID := security.CurrentUserID(c)
	camp, err := h.service.CreateCamp(c.Request.Context(), input, userID)
	if err != nil {
		h.fail(c, "create camp failed", err, "Could not create camp")
		return
	}

	go h.auditLog.Log("create", map[string]interface{}{
		"name":       camp.Name,
		"area_id":    camp.AreaID,
		"manager_id": camp.ManagerID,
	}, camp, userID)

	c.JSON(http.StatusCreated, camp)
}

func (h *CampHandler) UpdateCamp(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	var input CampInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID := security.CurrentUserID(c)
	camp, err := h.service.UpdateCamp(c.Request.Context(), id, input, userID)
	if err != nil {
		h.fail(c, "update camp failed", err, "Could not update camp")
		return
	}

	go h.auditLog.Log("update", input, camp, userID)

	c.JSON(http.StatusOK, camp)
}

func (h *CampHandler) DeleteCamp(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	userID := security.CurrentUserID(c)
	if err := h.service.DeleteCamp(c.Request.Context(), id, userID); err != nil {
		h.fail(c, "delete camp failed", err, "Could not delete camp")
		return
	}

	go h.auditLog.Log("delete", map[string]interface{}{"msg": "Camp removed"}, &models.Camp{ID: id}, userID)

	c.JSON(http.StatusOK, gin.H{"message": "Camp deleted successfully", "camp_id": id})
}

func (h *CampHandler) fail(c *gin.Context, msg string, err error, fallback string) {
	if custom_error.IsClientError(err) {
		h.logger.Debug(msg, zap.Error(err))
	} else {
		h.logger.Error(msg, zap.Error(err))
	}
	custom_error.Respond(c, err, fallback)
}
