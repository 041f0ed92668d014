// Package mocks holds testify mocks of the repository interfaces for service tests.
package mocks

import (
	"context"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Tx runs the callback inline and records how many transactions were opened.
type Tx struct {
	Calls int
}

func (t *Tx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type FlightRepository struct {
	mock.Mock
}

func (m *FlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) Available(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) GetCategory(ctx context.Context, flightID, categoryID int64) (*domain.FlightCategory, error) {
	args := m.Called(ctx, flightID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightCategory), args.Error(1)
}

func (m *FlightRepository) ReserveSeats(ctx context.Context, flightID, categoryID int64, seats int) (*domain.FlightCategory, error) {
	args := m.Called(ctx, flightID, categoryID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightCategory), args.Error(1)
}

func (m *FlightRepository) ReleaseSeats(ctx context.Context, flightID, categoryID int64, seats int) error {
	args := m.Called(ctx, flightID, categoryID, seats)
	return args.Error(0)
}

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) Countries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *CatalogRepository) Cities(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *CatalogRepository) Airlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *CatalogRepository) Categories(ctx context.Context) ([]domain.SeatCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatCategory), args.Error(1)
}

func (m *CatalogRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *OrderRepository) UpdateDelivery(ctx context.Context, id int64, method domain.DeliveryMethod) (*domain.Order, error) {
	return m.order(m.Called(ctx, id, method))
}

func (m *OrderRepository) RecomputeTotal(ctx context.Context, id int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *OrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OrderRepository) order(args mock.Arguments) (*domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type ReservationRepository struct {
	mock.Mock
}

func (m *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return m.list(m.Called(ctx))
}

func (m *ReservationRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Reservation, error) {
	return m.list(m.Called(ctx, orderID))
}

func (m *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *ReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReservationRepository) list(args mock.Arguments) ([]domain.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type PassengerRepository struct {
	mock.Mock
}

func (m *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *PassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *PassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	return m.list(m.Called(ctx))
}

func (m *PassengerRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Passenger, error) {
	return m.list(m.Called(ctx, reservationID))
}

func (m *PassengerRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Passenger, error) {
	return m.list(m.Called(ctx, orderID))
}

func (m *PassengerRepository) CountByReservation(ctx context.Context, reservationID int64) (int, error) {
	args := m.Called(ctx, reservationID)
	return args.Int(0), args.Error(1)
}

func (m *PassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *PassengerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PassengerRepository) list(args mock.Arguments) ([]domain.Passenger, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

type CardRepository struct {
	mock.Mock
}

func (m *CardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *CardRepository) GetByID(ctx context.Context, id int64) (*domain.CreditCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditCard), args.Error(1)
}

func (m *CardRepository) List(ctx context.Context) ([]domain.CreditCard, error) {
	return m.list(m.Called(ctx))
}

func (m *CardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *CardRepository) Update(ctx context.Context, card *domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *CardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CardRepository) list(args mock.Arguments) ([]domain.CreditCard, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditCard), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, id))
}

func (m *PaymentRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, id))
}

func (m *PaymentRepository) ListProcessingByCodeForUpdate(ctx context.Context, code string) ([]domain.Payment, error) {
	return m.list(m.Called(ctx, code))
}

func (m *PaymentRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return m.list(m.Called(ctx))
}

func (m *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, id, status))
}

func (m *PaymentRepository) RejectExpired(ctx context.Context, cutoff time.Time) ([]domain.Payment, error) {
	return m.list(m.Called(ctx, cutoff))
}

func (m *PaymentRepository) payment(args mock.Arguments) (*domain.Payment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *PaymentRepository) list(args mock.Arguments) ([]domain.Payment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *InvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	return m.list(m.Called(ctx))
}

func (m *InvoiceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *InvoiceRepository) list(args mock.Arguments) ([]domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return m.list(m.Called(ctx))
}

func (m *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *TicketRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Ticket, error) {
	return m.list(m.Called(ctx, invoiceID))
}

func (m *TicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) list(args mock.Arguments) ([]domain.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

var (
	_ repository.FlightRepository      = (*FlightRepository)(nil)
	_ repository.CatalogRepository     = (*CatalogRepository)(nil)
	_ repository.OrderRepository       = (*OrderRepository)(nil)
	_ repository.ReservationRepository = (*ReservationRepository)(nil)
	_ repository.PassengerRepository   = (*PassengerRepository)(nil)
	_ repository.CardRepository        = (*CardRepository)(nil)
	_ repository.PaymentRepository     = (*PaymentRepository)(nil)
	_ repository.InvoiceRepository     = (*InvoiceRepository)(nil)
	_ repository.TicketRepository      = (*TicketRepository)(nil)
)
