package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation holds SeatCount seats of one category on one flight inside an order.
// UnitPrice is a snapshot of the inventory base price taken at creation time.
type Reservation struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	FlightID   int64           `json:"flight_id"`
	CategoryID int64           `json:"category_id"`
	SeatCount  int             `json:"seat_count"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Passengers []Passenger     `json:"passengers,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func ReservationSubtotal(unitPrice decimal.Decimal, seats int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(seats)))
}

// SumSubtotals is the order total implied by its reservations.
func SumSubtotals(reservations []Reservation) decimal.Decimal {
	total := decimal.Zero
	for _, r := range reservations {
		total = total.Add(r.Subtotal)
	}
	return total
}
