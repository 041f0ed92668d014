package api

import (
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/orders"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service orders.OrderUseCase
	admin   gin.HandlerFunc
	log     *zap.Logger
}

type createOrderRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type deliveryRequest struct {
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method" binding:"required"`
}

func NewOrderHandler(service orders.OrderUseCase, admin gin.HandlerFunc, log *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, admin: admin, log: log}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/user/:id", h.listByUser)
	router.GET("/:id", h.get)
	router.PUT("/:id/status", h.admin, h.updateStatus)
	router.PUT("/:id/delivery", h.updateDelivery)
	router.DELETE("/:id", h.delete)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.service.Create(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) listByUser(c *gin.Context) {
	userID, ok := pathID(c, h.log)
	if !ok {
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) updateDelivery(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.service.UpdateDelivery(c.Request.Context(), id, req.DeliveryMethod)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) delete(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
