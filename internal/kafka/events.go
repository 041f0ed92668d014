package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPaymentInitiated        = "payment_initiated"
	EventPaymentConfirmed        = "payment_confirmed"
	EventPaymentRejected         = "payment_rejected"
	EventPaymentStatusOverridden = "payment_status_overridden"
)

// PaymentEvent never carries the verification code.
type PaymentEvent struct {
	Type       string          `json:"type"`
	PaymentID  int64           `json:"payment_id"`
	OrderID    int64           `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	InvoiceID  int64           `json:"invoice_id,omitempty"`
	Tickets    int             `json:"tickets,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
