package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidQuantity = errors.New("seat count must be positive")

	ErrUserNotFound        = errors.New("user not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrCategoryNotOffered  = errors.New("category not offered on this flight")
	ErrInsufficientSeats   = errors.New("insufficient seats")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotEditable    = errors.New("order is not in cart status")
	ErrOrderNotDeletable   = errors.New("only empty or cancelled orders can be deleted")
	ErrOrderEmpty          = errors.New("order has no reservations")
	ErrOrderChanged        = errors.New("order total changed after payment was initiated")
	ErrOrdersMixedOwners   = errors.New("orders belong to different users")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidDelivery     = errors.New("invalid delivery method")
	ErrOrderPaid           = errors.New("paid orders cannot change status")
	ErrOrderBilled         = errors.New("order has issued invoices or tickets")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationFull     = errors.New("reservation already has a passenger for every seat")

	ErrPassengerNotFound = errors.New("passenger not found")
	ErrInvalidPassenger  = errors.New("invalid passenger")
	ErrInvalidAge        = errors.New("age must be between 0 and 120")
	ErrFareClassMismatch = errors.New("fare class does not match age")

	ErrCardNotFound = errors.New("card not found")
	ErrInvalidCard  = errors.New("invalid card")
	ErrCardNotOwned = errors.New("card does not belong to the order owner")
	ErrCardInactive = errors.New("card is inactive")
	ErrCardExpired  = errors.New("card is expired")
	ErrCardInUse    = errors.New("card is referenced by payments")

	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAlreadyProcessed = errors.New("payment already processed")
	ErrInvalidCode             = errors.New("invalid verification code")
	ErrCodeExpired             = errors.New("verification code expired")
	ErrTooManyAttempts         = errors.New("too many verification attempts")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status")
	ErrInvalidInput            = errors.New("invalid input")

	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrInvalidTicketTransition = errors.New("invalid ticket status transition")
	ErrTicketCodeCollision     = errors.New("ticket code collision")
)

// InsufficientSeatsError reports how many seats were left when a reservation failed.
type InsufficientSeatsError struct {
	Available int
	Requested int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("insufficient seats: only %d available, %d requested", e.Available, e.Requested)
}

func (e *InsufficientSeatsError) Is(target error) bool {
	return target == ErrInsufficientSeats
}

// FareClassMismatchError names the class the age actually maps to.
type FareClassMismatchError struct {
	Requested FareClass
	Expected  FareClass
	Age       int
}

func (e *FareClassMismatchError) Error() string {
	return fmt.Sprintf("fare class %q does not match age %d, expected %q", e.Requested, e.Age, e.Expected)
}

func (e *FareClassMismatchError) Is(target error) bool {
	return target == ErrFareClassMismatch
}
