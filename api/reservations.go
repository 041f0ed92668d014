package api

import (
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/service/reservations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service reservations.ReservationUseCase
	log     *zap.Logger
}

type createReservationRequest struct {
	OrderID    int64 `json:"order_id" binding:"required"`
	FlightID   int64 `json:"flight_id" binding:"required"`
	CategoryID int64 `json:"category_id" binding:"required"`
	SeatCount  int   `json:"seat_count" binding:"required"`
}

func NewReservationHandler(service reservations.ReservationUseCase, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, log: log}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/user/:id", h.listByUser)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), reservations.CreateInput{
		OrderID:    req.OrderID,
		FlightID:   req.FlightID,
		CategoryID: req.CategoryID,
		SeatCount:  req.SeatCount,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ReservationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) listByUser(c *gin.Context) {
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

func (h *ReservationHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	reservation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// delete answers with the order as it stands after the seats were returned.
func (h *ReservationHandler) delete(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	order, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled", "order": order})
}
