package supplies

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

type SupplyServiceInterface interface {
	GetSupply(ctx context.Context, id int) (*models.SupplyLot, error)
	ListSupplies(ctx context.Context, filter SupplyFilter) ([]models.SupplyLot, error)
	ListLowStock(ctx context.Context) ([]models.LowStockAlert, error)
	Stats(ctx context.Context) (*models.SupplyStats, error)
	CreateSupply(ctx context.Context, input CreateSupplyInput) (*models.SupplyLot, error)
	DeleteSupply(ctx context.Context, id int) error
}

type SupplyHandler struct {
	service  SupplyServiceInterface
	auditLog auditlog.Auditor
	logger   *zap.Logger
}

func NewSupplyHandler(s SupplyServiceInterface, a auditlog.Auditor, logger *zap.Logger) *SupplyHandler {
	return &SupplyHandler{service: s, auditLog: a, logger: logger}
}

func (h *SupplyHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := security.RequirePermission(security.ResourceSupplies, security.ActionRead)

	router.GET("/supplies", read, h.GetSupplies)
	router.GET("/supplies/alerts/low-stock", read, h.GetLowStock)
	router.GET("/supplies/stats/overview", read, h.GetStats)
	router.GET("/supplies/camp/:camp_id", read, h.GetSuppliesByCamp)
	router.GET("/supplies/:id", read, h.GetSupply)
	router.POST("/supplies", security.RequirePermission(security.ResourceSupplies, security.ActionCreate), h.CreateSupply)
	router.DELETE("/supplies/:id", security.RequirePermission(security.ResourceSupplies, security.ActionDelete), h.DeleteSupply)
}

func (h *SupplyHandler) GetSupply(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	lot, err := h.service.GetSupply(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get supply failed", err, "Unable to get supply")
		return
	}

	c.JSON(http.StatusOK, lot)
}

func (h *SupplyHandler) GetSupplies(c *gin.Context) {
	var filter SupplyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	lots, err := h.service.ListSupplies(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list supplies failed", err, "Unable to list supplies")
		return
	}

	c.JSON(http.StatusOK, lots)
}

func (h *SupplyHandler) GetSuppliesByCamp(c *gin.Context) {
	campID, ok := params.PositiveInt(c, "camp_id")
	if !ok {
		return
	}

	lots, err := h.service.ListSupplies(c.Request.Context(), SupplyFilter{CampID: campID})
	if err != nil {
		h.fail(c, "list camp supplies failed", err, "Unable to list supplies")
		return
	}

	c.JSON(http.StatusOK, lots)
}

func (h *SupplyHandler) GetLowStock(c *gin.Context) {
	alerts, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		h.fail(c, "low stock query failed", err, "Unable to list low stock supplies")
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *SupplyHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "supply stats failed", err, "Unable to compute supply statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *SupplyHandler) CreateSupply(c *gin.Context) {
	var input CreateSupplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	lot, err := h.service.CreateSupply(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "create supply failed", err, "Could not create supply")
		return
	}

	go h.auditLog.Log("create", map[string]interface{}{
		"camp_id":     lot.CampID,
		"donation_id": lot.DonationID,
		"item_name":   lot.ItemName,
		"quantity":    lot.Quantity,
	}, lot, security.CurrentUserID(c))

	c.JSON(http.StatusCreated, lot)
}

func (h *SupplyHandler) DeleteSupply(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSupply(c.Request.Context(), id); err != nil {
		h.fail(c, "delete supply failed", err, "Could not delete supply")
		return
	}

	go h.auditLog.Log("delete", map[string]interface{}{"msg": "Supply removed"}, &models.SupplyLot{ID: id}, security.CurrentUserID(c))

	c.JSON(http.StatusOK, gin.H{"message": "Supply deleted successfully", "supply_id": id})
}

func (h *SupplyHandler) fail(c *gin.Context, msg string, err error, fallback string) {
	if custom_error.IsClientError(err) {
		h.logger.Debug(msg, zap.Error(err))
	} else {
		h.logger.Error(msg, zap.Error(err))
	}
	custom_error.Respond(c, err, fallback)
}
