package orders

import (
	"context"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/metrics"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	Create(ctx context.Context, userID int64) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	UpdateDelivery(ctx context.Context, id int64, method domain.DeliveryMethod) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type OrderService struct {
	tx           TxRunner
	users        repository.CatalogRepository
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	passengers   repository.PassengerRepository
	flights      repository.FlightRepository
	cache        CacheInvalidator
	log          *zap.Logger
}

type Option func(*OrderService)

func WithCache(cache CacheInvalidator) Option {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *OrderService) {
		s.log = log
	}
}

func NewOrderService(
	tx TxRunner,
	users repository.CatalogRepository,
	orders repository.OrderRepository,
	reservations repository.ReservationRepository,
	passengers repository.PassengerRepository,
	flights repository.FlightRepository,
	opts ...Option,
) *OrderService {
	s := &OrderService{
		tx:           tx,
		users:        users,
		orders:       orders,
		reservations: reservations,
		passengers:   passengers,
		flights:      flights,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OrderService) Create(ctx context.Context, userID int64) (*domain.Order, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	order := &domain.Order{UserID: userID, Status: domain.OrderStatusCart}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("order created", zap.Int64("order_id", order.ID), zap.Int64("user_id", userID))
	return order, nil
}

// Get returns the order with its reservations and their passengers.
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	passengers, err := s.passengers.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Reservations = AttachPassengers(reservations, passengers)
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus is the administrative status change. Seats of a cancelled order are
// returned when the order is deleted. Paid orders keep their status.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidOrderStatus
	}
	var order *domain.Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransition(status) {
			return domain.ErrOrderPaid
		}
		order, err = s.orders.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("order status updated", zap.Int64("order_id", id), zap.String("status", string(status)))
	return order, nil
}

func (s *OrderService) UpdateDelivery(ctx context.Context, id int64, method domain.DeliveryMethod) (*domain.Order, error) {
	if !method.Valid() {
		return nil, domain.ErrInvalidDelivery
	}
	var updated *domain.Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !order.Editable() {
			return domain.ErrOrderNotEditable
		}
		updated, err = s.orders.UpdateDelivery(ctx, id, method)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an empty or cancelled order. Seats held by a cancelled order's
// reservations go back to inventory in the same transaction.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	released := 0
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		reservations, err := s.reservations.ListByOrder(ctx, id)
		if err != nil {
			return err
		}
		if !order.Deletable(len(reservations)) {
			return domain.ErrOrderNotDeletable
		}
		for _, r := range reservations {
			if err := s.flights.ReleaseSeats(ctx, r.FlightID, r.CategoryID, r.SeatCount); err != nil {
				return err
			}
			released += r.SeatCount
		}
		return s.orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if released > 0 {
		metrics.SeatsReleasedTotal.Add(float64(released))
		s.invalidateFlights(ctx)
	}
	s.log.Info("order deleted", zap.Int64("order_id", id), zap.Int("seats_released", released))
	return nil
}

func (s *OrderService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flights cache invalidation failed", zap.Error(err))
	}
}

// AttachPassengers groups passengers under their reservations.
func AttachPassengers(reservations []domain.Reservation, passengers []domain.Passenger) []domain.Reservation {
	byReservation := make(map[int64][]domain.Passenger, len(reservations))
	for _, p := range passengers {
		byReservation[p.ReservationID] = append(byReservation[p.ReservationID], p)
	}
	for i := range reservations {
		reservations[i].Passengers = byReservation[reservations[i].ID]
	}
	return reservations
}

var _ OrderUseCase = (*OrderService)(nil)
