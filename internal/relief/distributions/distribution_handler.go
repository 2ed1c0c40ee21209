package distributions

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

type DistributionServiceInterface interface {
	FulfillRequest(ctx context.Context, input FulfillInput) (*models.Distribution, error)
	GetDistribution(ctx context.Context, id int) (*models.Distribution, error)
	ListDistributions(ctx context.Context, filter DistributionFilter) ([]models.Distribution, error)
	ListRecent(ctx context.Context) ([]models.Distribution, error)
	Stats(ctx context.Context) (*models.DistributionStats, error)
}

type DistributionHandler struct {
	service  DistributionServiceInterface
	auditLog auditlog.Auditor
	logger   *zap.Logger
}

func NewDistributionHandler(s DistributionServiceInterface, a auditlog.Auditor, logger *zap.Logger) *DistributionHandler {
	return &DistributionHandler{service: s, auditLog: a, logger: logger}
}

func (h *DistributionHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := security.RequirePermission(security.ResourceDistributions, security.ActionRead)

	router.POST("/distributions/fulfill-request/:request_id",
		security.RequirePermission(security.ResourceDistributions, security.ActionCreate),
		h.FulfillRequest,
	)
	router.GET("/distributions", read, h.GetDistributions)
	router.GET("/distributions/recent/week", read, h.GetRecent)
	router.GET("/distributions/stats/overview", read, h.GetStats)
	router.GET("/distributions/victim/:victim_id", read, h.GetByVictim)
	router.GET("/distributions/supply/:supply_id", read, h.GetBySupply)
	router.GET("/distributions/:id", read, h.GetDistribution)
}

func (h *DistributionHandler) FulfillRequest(c *gin.Context) {
	requestID, ok := params.PositiveInt(c, "request_id")
	if !ok {
		return
	}

	var payload FulfillRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	distribution, err := h.service.FulfillRequest(c.Request.Context(), FulfillInput{
		RequestID:           requestID,
		SupplyID:            payload.SupplyID,
		QuantityDistributed: payload.QuantityDistributed,
	})
	if err != nil {
		h.fail(c, "fulfil request failed", err, "could not complete distribution")
		return
	}

	userID := security.CurrentUserID(c)
	go h.auditLog.Log("fulfil", map[string]interface{}{
		"request_id":     distribution.RequestID,
		"supply_id":      distribution.SupplyID,
		"victim_id":      distribution.VictimID,
		"quantity_given": distribution.QuantityGiven,
	}, distribution, userID)
	go h.auditLog.Log("fulfilled", map[string]interface{}{
		"distribution_id": distribution.ID,
	}, &models.Request{ID: distribution.RequestID}, userID)

	c.JSON(http.StatusCreated, distribution)
}

func (h *DistributionHandler) GetDistribution(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetDistribution(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get distribution failed", err, "Unable to get distribution")
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DistributionHandler) GetDistributions(c *gin.Context) {
	var filter DistributionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	h.list(c, filter)
}

func (h *DistributionHandler) GetByVictim(c *gin.Context) {
	victimID, ok := params.PositiveInt(c, "victim_id")
	if !ok {
		return
	}
	h.list(c, DistributionFilter{VictimID: victimID})
}

func (h *DistributionHandler) GetBySupply(c *gin.Context) {
	supplyID, ok := params.PositiveInt(c, "supply_id")
	if !ok {
		return
	}
	h.list(c, DistributionFilter{SupplyID: supplyID})
}

func (h *DistributionHandler) list(c *gin.Context, filter DistributionFilter) {
	distributions, err := h.service.ListDistributions(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list distributions failed", err, "Unable to list distributions")
		return
	}

	c.JSON(http.StatusOK, distributions)
}

func (h *DistributionHandler) GetRecent(c *gin.Context) {
	distributions, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		h.fail(c, "list recent distributions failed", err, "Unable to list distributions")
		return
	}

	c.JSON(http.StatusOK, distributions)
}

func (h *DistributionHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "distribution stats failed", err, "Unable to compute distribution statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DistributionHandler) fail(c *gin.Context, msg string, err error, fallback string) {
	if custom_error.IsClientError(err) {
		h.logger.Debug(msg, zap.Error(err))
	} else {
		h.logger.Error(msg, zap.Error(err))
	}
	custom_error.Respond(c, err, fallback)
}
