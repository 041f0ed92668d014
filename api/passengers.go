package api

import (
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
	log     *zap.Logger
}

func NewPassengerHandler(service passengers.PassengerUseCase, log *zap.Logger) *PassengerHandler {
	return &PassengerHandler{service: service, log: log}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var input passengers.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	passenger, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) list(c *gin.Context) {
	reservationID, err := queryInt64(c, "reservation_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.service.List(c.Request.Context(), reservationID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	passenger, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) update(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var input passengers.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	passenger, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) delete(c *gin.Context) {
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
