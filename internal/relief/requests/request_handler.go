package requests

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

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.Request, error)
	GetRequest(ctx context.Context, id int) (*models.Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, error)
	ListUrgent(ctx context.Context) ([]models.Request, error)
	ListByCamp(ctx context.Context, campID int) ([]models.Request, error)
	ListByVictim(ctx context.Context, victimID int) ([]models.Request, error)
	Stats(ctx context.Context) (*models.RequestStats, error)
	Reject(ctx context.Context, id int) (*models.Request, error)
}

type RequestHandler struct {
	service     RequestServiceInterface
	auditLog    auditlog.Auditor
	createLimit gin.HandlerFunc
	logger      *zap.Logger
}

// NewRequestHandler wires the handler; createLimit guards request creation
// and may be nil.
func NewRequestHandler(s RequestServiceInterface, a auditlog.Auditor, createLimit gin.HandlerFunc, logger *zap.Logger) *RequestHandler {
	if createLimit == nil {
		createLimit = func(c *gin.Context) { c.Next() }
	}
	return &RequestHandler{
		service:     s,
		auditLog:    a,
		createLimit: createLimit,
		logger:      logger,
	}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := security.RequirePermission(security.ResourceRequests, security.ActionRead)

	router.POST("/requests", security.RequirePermission(security.ResourceRequests, security.ActionCreate), h.createLimit, h.CreateRequest)
	router.GET("/requests", read, h.GetRequests)
	router.GET("/requests/urgent", read, h.GetUrgentRequests)
	router.GET("/requests/stats", read, h.GetStats)
	router.GET("/requests/victim/:victim_id", read, h.GetRequestsByVictim)
	router.GET("/requests/camp/:camp_id", read, h.GetRequestsByCamp)
	router.GET("/requests/:id", read, h.GetRequest)
	router.PATCH("/requests/:id/reject", security.RequirePermission(security.ResourceRequests, security.ActionUpdate), h.RejectRequest)
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	req, err := h.service.CreateRequest(c.Request.Context(), input)
	if err != nil {
		h.logError("create request failed", err)
		custom_error.Respond(c, err, "Could not create request")
		return
	}

	go h.auditLog.Log("create", map[string]interface{}{
		"victim_id":       req.VictimID,
		"camp_id":         req.CampID,
		"item_requested":  req.ItemRequested,
		"quantity_needed": req.QuantityNeeded,
		"priority":        req.Priority,
	}, req, security.CurrentUserID(c))

	c.JSON(http.StatusCreated, req)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	req, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.logError("get request failed", err)
		custom_error.Respond(c, err, "Unable to get request")
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) GetRequests(c *gin.Context) {
	var filter RequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	requests, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.logError("list requests failed", err)
		custom_error.Respond(c, err, "Unable to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetUrgentRequests(c *gin.Context) {
	requests, err := h.service.ListUrgent(c.Request.Context())
	if err != nil {
		h.logError("list urgent requests failed", err)
		custom_error.Respond(c, err, "Unable to list urgent requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetRequestsByCamp(c *gin.Context) {
	campID, ok := params.PositiveInt(c, "camp_id")
	if !ok {
		return
	}

	requests, err := h.service.ListByCamp(c.Request.Context(), campID)
	if err != nil {
		h.logError("list camp requests failed", err)
		custom_error.Respond(c, err, "Unable to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetRequestsByVictim(c *gin.Context) {
	victimID, ok := params.PositiveInt(c, "victim_id")
	if !ok {
		return
	}

	requests, err := h.service.ListByVictim(c.Request.Context(), victimID)
	if err != nil {
		h.logError("list victim requests failed", err)
		custom_error.Respond(c, err, "Unable to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logError("request stats failed", err)
		custom_error.Respond(c, err, "Unable to compute request statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *RequestHandler) RejectRequest(c *gin.Context) {
	id, ok := params.PositiveInt(c, "id")
	if !ok {
		return
	}

	req, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		h.logError("reject request failed", err)
		custom_error.Respond(c, err, "Could not reject request")
		return
	}

	go h.auditLog.Log("reject", map[string]interface{}{"msg": "Request rejected"}, req, security.CurrentUserID(c))

	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) logError(msg string, err error) {
	if custom_error.IsClientError(err) {
		h.logger.Debug(msg, zap.Error(err))
		return
	}
	h.logger.Error(msg, zap.Error(err))
}
