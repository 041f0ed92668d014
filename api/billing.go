package api

import (
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/billing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BillingHandler struct {
	service billing.BillingUseCase
	log     *zap.Logger
}

type ticketStatusRequest struct {
	Status domain.TicketStatus `json:"status" binding:"required"`
}

func NewBillingHandler(service billing.BillingUseCase, log *zap.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

func (h *BillingHandler) RegisterInvoices(router *gin.RouterGroup) {
	router.GET("", h.listInvoices)
	router.GET("/user/:id", h.listInvoicesByUser)
	router.GET("/:id", h.getInvoice)
}

func (h *BillingHandler) RegisterTickets(router *gin.RouterGroup) {
	router.GET("", h.listTickets)
	router.GET("/user/:id", h.listTicketsByUser)
	router.GET("/:id", h.getTicket)
	router.PUT("/:id/status", h.updateTicketStatus)
}

func (h *BillingHandler) listInvoices(c *gin.Context) {
	list, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BillingHandler) listInvoicesByUser(c *gin.Context) {
	userID, ok := pathID(c, h.log)
	if !ok {
		return
	}
	list, err := h.service.ListInvoicesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BillingHandler) getInvoice(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	invoice, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) listTickets(c *gin.Context) {
	list, err := h.service.ListTickets(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BillingHandler) listTicketsByUser(c *gin.Context) {
	userID, ok := pathID(c, h.log)
	if !ok {
		return
	}
	list, err := h.service.ListTicketsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BillingHandler) getTicket(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *BillingHandler) updateTicketStatus(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var req ticketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ticket, err := h.service.UpdateTicketStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
