package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusIssued    TicketStatus = "issued"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// CanTransition allows issued -> used and issued -> cancelled only.
func (s TicketStatus) CanTransition(to TicketStatus) bool {
	return s == TicketStatusIssued && (to == TicketStatusUsed || to == TicketStatusCancelled)
}

type Ticket struct {
	ID            int64        `json:"id"`
	ReservationID int64        `json:"reservation_id"`
	PassengerID   int64        `json:"passenger_id"`
	InvoiceID     int64        `json:"invoice_id"`
	Code          string       `json:"code"`
	Status        TicketStatus `json:"status"`
	IssuedAt      time.Time    `json:"issued_at"`
}

// NewTicketCode returns "TK-" followed by 12 upper-case hex digits of a random UUID.
func NewTicketCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TK-" + strings.ToUpper(id[:12])
}
