package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCart      OrderStatus = "cart"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCart, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next. A paid order keeps its
// status; everything else may change freely.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	return s != OrderStatusPaid || next == OrderStatusPaid
}

type DeliveryMethod string

const (
	DeliveryAirportPickup DeliveryMethod = "airport_pickup"
	DeliveryHome          DeliveryMethod = "home_delivery"
)

func (d DeliveryMethod) Valid() bool {
	return d == DeliveryAirportPickup || d == DeliveryHome
}

type Order struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	Status         OrderStatus     `json:"status"`
	Total          decimal.Decimal `json:"total"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method,omitempty"`
	Reservations   []Reservation   `json:"reservations,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Editable reports whether reservations and passengers may still change.
func (o Order) Editable() bool {
	return o.Status == OrderStatusCart
}

// Deletable reports whether the order may be removed: only empty or cancelled carts.
func (o Order) Deletable(reservationCount int) bool {
	return o.Status == OrderStatusCancelled || reservationCount == 0
}
