package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixture struct {
	tx           *mocks.Tx
	orders       *mocks.OrderRepository
	reservations *mocks.ReservationRepository
	passengers   *mocks.PassengerRepository
	flights      *mocks.FlightRepository
	cache        *MockCache
	service      *ReservationService
}

func newFixture() *fixture {
	f := &fixture{
		tx:           &mocks.Tx{},
		orders:       &mocks.OrderRepository{},
		reservations: &mocks.ReservationRepository{},
		passengers:   &mocks.PassengerRepository{},
		flights:      &mocks.FlightRepository{},
		cache:        &MockCache{},
	}
	f.service = NewReservationService(f.tx, f.orders, f.reservations, f.passengers, f.flights, WithCache(f.cache))
	return f
}

func cart(id int64) *domain.Order {
	return &domain.Order{ID: id, UserID: 1, Status: domain.OrderStatusCart}
}

func TestReservationService_Create(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything
	input := CreateInput{OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 2}
	price := decimal.NewFromInt(150)

	f.orders.On("GetForUpdate", ctx, int64(1)).Return(cart(1), nil).Once()
	f.flights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	f.flights.On("ReserveSeats", ctx, int64(7), int64(2), 2).
		Return(&domain.FlightCategory{FlightID: 7, CategoryID: 2, TotalSeats: 10, AvailableSeats: 8, BasePrice: price}, nil).Once()
	f.reservations.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.UnitPrice.Equal(price) && r.Subtotal.Equal(decimal.NewFromInt(300)) && r.SeatCount == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Reservation).ID = 11
	}).Return(nil).Once()
	f.orders.On("RecomputeTotal", ctx, int64(1)).
		Return(&domain.Order{ID: 1, Status: domain.OrderStatusCart, Total: decimal.NewFromInt(300)}, nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()

	result, err := f.service.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Reservation.ID)
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, f.tx.Calls)
	f.orders.AssertExpectations(t)
	f.flights.AssertExpectations(t)
	f.reservations.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestReservationService_Create_InsufficientSeats(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.orders.On("GetForUpdate", ctx, int64(1)).Return(cart(1), nil).Once()
	f.flights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	f.flights.On("ReserveSeats", ctx, int64(7), int64(2), 3).
		Return(nil, &domain.InsufficientSeatsError{Available: 2, Requested: 3}).Once()

	_, err := f.service.Create(context.Background(), CreateInput{OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 3})

	var seatsErr *domain.InsufficientSeatsError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, 2, seatsErr.Available)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "RecomputeTotal", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestReservationService_Create_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, CreateInput{OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.service.Create(ctx, CreateInput{FlightID: 7, CategoryID: 2, SeatCount: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Equal(t, 0, f.tx.Calls)
}

func TestReservationService_Create_OrderNotInCart(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.orders.On("GetForUpdate", ctx, int64(1)).
		Return(&domain.Order{ID: 1, Status: domain.OrderStatusPaid}, nil).Once()

	_, err := f.service.Create(context.Background(), CreateInput{OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 1})
	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)
	f.flights.AssertNotCalled(t, "ReserveSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationService_Create_CategoryNotOffered(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.orders.On("GetForUpdate", ctx, int64(1)).Return(cart(1), nil).Once()
	f.flights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	f.flights.On("ReserveSeats", ctx, int64(7), int64(9), 1).Return(nil, domain.ErrCategoryNotOffered).Once()

	_, err := f.service.Create(context.Background(), CreateInput{OrderID: 1, FlightID: 7, CategoryID: 9, SeatCount: 1})
	assert.ErrorIs(t, err, domain.ErrCategoryNotOffered)
}

func TestReservationService_Delete(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.reservations.On("GetByID", ctx, int64(11)).
		Return(&domain.Reservation{ID: 11, OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 2}, nil).Once()
	f.orders.On("GetForUpdate", ctx, int64(1)).Return(cart(1), nil).Once()
	f.reservations.On("Delete", ctx, int64(11)).Return(nil).Once()
	f.flights.On("ReleaseSeats", ctx, int64(7), int64(2), 2).Return(nil).Once()
	f.orders.On("RecomputeTotal", ctx, int64(1)).Return(&domain.Order{ID: 1, Total: decimal.Zero}, nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	order, err := f.service.Delete(context.Background(), 11)

	require.NoError(t, err)
	assert.True(t, order.Total.IsZero())
	f.flights.AssertExpectations(t)
}

func TestReservationService_Delete_PaidOrderRejected(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.reservations.On("GetByID", ctx, int64(11)).
		Return(&domain.Reservation{ID: 11, OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 2}, nil).Once()
	f.orders.On("GetForUpdate", ctx, int64(1)).
		Return(&domain.Order{ID: 1, Status: domain.OrderStatusPaid}, nil).Once()

	_, err := f.service.Delete(context.Background(), 11)

	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)
	f.flights.AssertNotCalled(t, "ReleaseSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reservations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReservationService_Get_LoadsPassengers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.reservations.On("GetByID", ctx, int64(11)).Return(&domain.Reservation{ID: 11}, nil).Once()
	f.passengers.On("ListByReservation", ctx, int64(11)).Return([]domain.Passenger{{ID: 1}, {ID: 2}}, nil).Once()

	res, err := f.service.Get(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, res.Passengers, 2)
}
