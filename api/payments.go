package api

import (
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/payments"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
	admin   gin.HandlerFunc
	log     *zap.Logger
}

type initiateRequest struct {
	OrderID        int64                 `json:"order_id" binding:"required"`
	CardID         int64                 `json:"card_id" binding:"required"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method"`
}

type initiateMultipleRequest struct {
	OrderIDs       []int64               `json:"order_ids" binding:"required,min=1"`
	CardID         int64                 `json:"card_id" binding:"required"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method"`
}

type confirmRequest struct {
	PaymentID int64  `json:"payment_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

type confirmMultipleRequest struct {
	SharedCode    string `json:"shared_code" binding:"required"`
	SubmittedCode string `json:"submitted_code" binding:"required"`
}

type paymentStatusRequest struct {
	Status domain.PaymentStatus `json:"status" binding:"required"`
}

func NewPaymentHandler(service payments.PaymentUseCase, admin gin.HandlerFunc, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, admin: admin, log: log}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/initiate", h.initiate)
	router.POST("/initiate-multiple", h.initiateMultiple)
	router.POST("/confirm", h.confirm)
	router.POST("/confirm-multiple", h.confirmMultiple)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.admin, h.overrideStatus)
}

func (h *PaymentHandler) initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.service.Initiate(c.Request.Context(), payments.InitiateInput{
		OrderID:        req.OrderID,
		CardID:         req.CardID,
		DeliveryMethod: req.DeliveryMethod,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	body := gin.H{
		"payment_id":        res.Payments[0].ID,
		"status":            res.Payments[0].Status,
		"amount":            res.Amount,
		"expires_at":        res.ExpiresAt,
		"notification_sent": res.NotificationSent,
	}
	if res.Code != "" {
		body["verification_code"] = res.Code
	}
	c.JSON(http.StatusCreated, body)
}

func (h *PaymentHandler) initiateMultiple(c *gin.Context) {
	var req initiateMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.service.InitiateMultiple(c.Request.Context(), payments.InitiateMultipleInput{
		OrderIDs:       req.OrderIDs,
		CardID:         req.CardID,
		DeliveryMethod: req.DeliveryMethod,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settlement, err := h.service.Confirm(c.Request.Context(), payments.ConfirmInput{PaymentID: req.PaymentID, Code: req.Code})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "payment confirmed",
		"payment":         settlement.Payment,
		"order":           settlement.Order,
		"invoice":         settlement.Invoice,
		"tickets":         settlement.Tickets,
		"tickets_created": len(settlement.Tickets),
	})
}

func (h *PaymentHandler) confirmMultiple(c *gin.Context) {
	var req confirmMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.service.ConfirmMultiple(c.Request.Context(), payments.ConfirmMultipleInput{
		SharedCode:    req.SharedCode,
		SubmittedCode: req.SubmittedCode,
		Client:        c.ClientIP(),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	payment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) overrideStatus(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	payment, err := h.service.OverrideStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
