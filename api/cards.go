package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/cards"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CardHandler struct {
	service cards.CardUseCase
	log     *zap.Logger
}

// cardResponse never carries more than the masked number.
type cardResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	MaskedNumber string          `json:"masked_number"`
	Holder       string          `json:"holder"`
	Expiry       string          `json:"expiry"`
	Type         domain.CardType `json:"type"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toCardResponse(card domain.CreditCard) cardResponse {
	return cardResponse{
		ID:           card.ID,
		UserID:       card.UserID,
		MaskedNumber: card.MaskedNumber(),
		Holder:       card.Holder,
		Expiry:       card.Expiry.Format(time.DateOnly),
		Type:         card.Type,
		Active:       card.Active,
		CreatedAt:    card.CreatedAt,
	}
}

func toCardResponses(list []domain.CreditCard) []cardResponse {
	out := make([]cardResponse, 0, len(list))
	for _, card := range list {
		out = append(out, toCardResponse(card))
	}
	return out
}

func NewCardHandler(service cards.CardUseCase, log *zap.Logger) *CardHandler {
	return &CardHandler{service: service, log: log}
}

func (h *CardHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/user/:id", h.listByUser)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id/deactivate", h.deactivate)
	router.DELETE("/:id", h.delete)
}

func (h *CardHandler) create(c *gin.Context) {
	var input cards.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	card, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toCardResponse(*card))
}

func (h *CardHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponses(list))
}

func (h *CardHandler) listByUser(c *gin.Context) {
	userID, ok := pathID(c, h.log)
	if !ok {
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponses(list))
}

func (h *CardHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	card, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(*card))
}

func (h *CardHandler) update(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var input cards.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	card, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(*card))
}

func (h *CardHandler) deactivate(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	card, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(*card))
}

func (h *CardHandler) delete(c *gin.Context) {
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
