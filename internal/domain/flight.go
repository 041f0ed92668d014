package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusOnTime    FlightStatus = "on_time"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightStatusScheduled, FlightStatusOnTime, FlightStatusDelayed, FlightStatusCancelled:
		return true
	}
	return false
}

type Flight struct {
	ID                int64            `json:"id"`
	Number            string           `json:"number"`
	AirlineID         int64            `json:"airline_id"`
	AirlineName       string           `json:"airline_name"`
	OriginCityID      int64            `json:"origin_city_id"`
	OriginCity        string           `json:"origin_city"`
	DestinationCityID int64            `json:"destination_city_id"`
	DestinationCity   string           `json:"destination_city"`
	DepartureAt       time.Time        `json:"departure_at"`
	ArrivalAt         time.Time        `json:"arrival_at"`
	Status            FlightStatus     `json:"status"`
	Direct            bool             `json:"direct"`
	Categories        []FlightCategory `json:"categories,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// FlightCategory is the seat inventory of one category on one flight.
// 0 <= AvailableSeats <= TotalSeats always holds; TotalSeats never changes.
type FlightCategory struct {
	FlightID       int64           `json:"flight_id"`
	CategoryID     int64           `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
	BasePrice      decimal.Decimal `json:"base_price"`
}

// FareRange returns the cheapest and the most expensive base price offered on the flight.
func (f Flight) FareRange() (lo, hi decimal.Decimal, ok bool) {
	if len(f.Categories) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	lo, hi = f.Categories[0].BasePrice, f.Categories[0].BasePrice
	for _, c := range f.Categories[1:] {
		lo = decimal.Min(lo, c.BasePrice)
		hi = decimal.Max(hi, c.BasePrice)
	}
	return lo, hi, true
}

// HasAvailableSeats reports whether any category still has seats.
func (f Flight) HasAvailableSeats() bool {
	for _, c := range f.Categories {
		if c.AvailableSeats > 0 {
			return true
		}
	}
	return false
}

// FlightFilter narrows flight searches. Zero values mean "any".
type FlightFilter struct {
	OriginCityID      int64
	DestinationCityID int64
	Date              *time.Time
	AirlineID         int64
	CategoryID        int64
	Direct            *bool
	Status            FlightStatus
	FareMin           *decimal.Decimal
	FareMax           *decimal.Decimal
}
