package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Expected string `json:"expected,omitempty"`
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is matched in order with errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{domain.ErrInvalidPassenger, http.StatusBadRequest, "invalid_passenger"},
	{domain.ErrInvalidAge, http.StatusBadRequest, "invalid_age"},
	{domain.ErrFareClassMismatch, http.StatusBadRequest, "fare_class_mismatch"},
	{domain.ErrInvalidCard, http.StatusBadRequest, "invalid_card"},
	{domain.ErrInvalidOrderStatus, http.StatusBadRequest, "invalid_order_status"},
	{domain.ErrInvalidDelivery, http.StatusBadRequest, "invalid_delivery_method"},
	{domain.ErrInvalidPaymentStatus, http.StatusBadRequest, "invalid_payment_status"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_request"},
	{domain.ErrOrdersMixedOwners, http.StatusBadRequest, "orders_mixed_owners"},

	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{domain.ErrFlightNotFound, http.StatusNotFound, "flight_not_found"},
	{domain.ErrCategoryNotOffered, http.StatusNotFound, "category_not_offered"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{domain.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{domain.ErrPassengerNotFound, http.StatusNotFound, "passenger_not_found"},
	{domain.ErrCardNotFound, http.StatusNotFound, "card_not_found"},
	{domain.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found"},
	{domain.ErrInvoiceNotFound, http.StatusNotFound, "invoice_not_found"},
	{domain.ErrTicketNotFound, http.StatusNotFound, "ticket_not_found"},

	{domain.ErrInsufficientSeats, http.StatusConflict, "insufficient_seats"},
	{domain.ErrOrderNotEditable, http.StatusConflict, "order_not_editable"},
	{domain.ErrOrderNotDeletable, http.StatusConflict, "order_not_deletable"},
	{domain.ErrOrderPaid, http.StatusConflict, "order_paid"},
	{domain.ErrOrderBilled, http.StatusConflict, "order_billed"},
	{domain.ErrOrderEmpty, http.StatusConflict, "order_empty"},
	{domain.ErrOrderChanged, http.StatusConflict, "order_changed"},
	{domain.ErrReservationFull, http.StatusConflict, "reservation_full"},
	{domain.ErrPaymentAlreadyProcessed, http.StatusConflict, "payment_already_processed"},
	{domain.ErrCardInUse, http.StatusConflict, "card_in_use"},
	{domain.ErrInvalidTicketTransition, http.StatusConflict, "invalid_ticket_transition"},

	{domain.ErrInvalidCode, http.StatusUnauthorized, "invalid_code"},
	{domain.ErrCodeExpired, http.StatusUnauthorized, "code_expired"},
	{domain.ErrCardNotOwned, http.StatusForbidden, "card_not_owned"},
	{domain.ErrCardInactive, http.StatusForbidden, "card_inactive"},
	{domain.ErrCardExpired, http.StatusForbidden, "card_expired"},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too_many_attempts"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondError writes the JSON error for err. Internal errors are logged and replaced
// with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		c.JSON(status, errorResponse{Error: "internal server error", Code: code})
		return
	}

	resp := errorResponse{Error: err.Error(), Code: code}
	var mismatch *domain.FareClassMismatchError
	if errors.As(err, &mismatch) {
		resp.Expected = string(mismatch.Expected)
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_request"})
}
