package reservations

import (
	"context"
	"errors"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/metrics"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/service/orders"
	"github.com/Domenick1991/skyreserva/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ReservationUseCase interface {
	Create(ctx context.Context, input CreateInput) (*Result, error)
	Delete(ctx context.Context, id int64) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
}

type CreateInput struct {
	OrderID    int64 `json:"order_id"`
	FlightID   int64 `json:"flight_id"`
	CategoryID int64 `json:"category_id"`
	SeatCount  int   `json:"seat_count"`
}

// Result is the new reservation together with the order total it produced.
type Result struct {
	Reservation domain.Reservation `json:"reservation"`
	Order       domain.Order       `json:"order"`
}

type ReservationService struct {
	tx           orders.TxRunner
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	passengers   repository.PassengerRepository
	flights      repository.FlightRepository
	cache        orders.CacheInvalidator
	log          *zap.Logger
}

type Option func(*ReservationService)

func WithCache(cache orders.CacheInvalidator) Option {
	return func(s *ReservationService) {
		s.cache = cache
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *ReservationService) {
		s.log = log
	}
}

func NewReservationService(
	tx orders.TxRunner,
	orderRepo repository.OrderRepository,
	reservations repository.ReservationRepository,
	passengers repository.PassengerRepository,
	flights repository.FlightRepository,
	opts ...Option,
) *ReservationService {
	s := &ReservationService{
		tx:           tx,
		orders:       orderRepo,
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

// Create takes SeatCount seats from the (flight, category) inventory, snapshots the unit
// price and recomputes the order total. All of it commits or none of it does.
func (s *ReservationService) Create(ctx context.Context, input CreateInput) (*Result, error) {
	if input.OrderID <= 0 || input.FlightID <= 0 || input.CategoryID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if input.SeatCount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	ctx, span := tracing.StartSpan(ctx, "reservations.Create")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("order_id", input.OrderID),
		attribute.Int64("flight_id", input.FlightID),
		attribute.Int64("category_id", input.CategoryID),
		attribute.Int("seat_count", input.SeatCount),
	)

	var result Result
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if !order.Editable() {
			return domain.ErrOrderNotEditable
		}
		if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
			return err
		}

		inventory, err := s.flights.ReserveSeats(ctx, input.FlightID, input.CategoryID, input.SeatCount)
		if err != nil {
			return err
		}

		reservation := domain.Reservation{
			OrderID:    input.OrderID,
			FlightID:   input.FlightID,
			CategoryID: input.CategoryID,
			SeatCount:  input.SeatCount,
			UnitPrice:  inventory.BasePrice,
			Subtotal:   domain.ReservationSubtotal(inventory.BasePrice, input.SeatCount),
		}
		if err := s.reservations.Create(ctx, &reservation); err != nil {
			return err
		}

		updated, err := s.orders.RecomputeTotal(ctx, input.OrderID)
		if err != nil {
			return err
		}
		result = Result{Reservation: reservation, Order: *updated}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.recordRejection(err)
		return nil, err
	}

	metrics.ReservationsCreatedTotal.Inc()
	metrics.SeatsReservedTotal.Add(float64(input.SeatCount))
	s.invalidateFlights(ctx)
	s.log.Info("reservation created",
		zap.Int64("reservation_id", result.Reservation.ID),
		zap.Int64("order_id", input.OrderID),
		zap.Int64("flight_id", input.FlightID),
		zap.Int("seats", input.SeatCount),
		zap.String("order_total", result.Order.Total.String()),
	)
	return &result, nil
}

// Delete cancels a reservation of a cart order, returning its seats to inventory.
func (s *ReservationService) Delete(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}

	ctx, span := tracing.StartSpan(ctx, "reservations.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("reservation_id", id))

	var (
		updated     *domain.Order
		reservation *domain.Reservation
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		reservation, err = s.reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		order, err := s.orders.GetForUpdate(ctx, reservation.OrderID)
		if err != nil {
			return err
		}
		if !order.Editable() {
			return domain.ErrOrderNotEditable
		}
		if err := s.reservations.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.flights.ReleaseSeats(ctx, reservation.FlightID, reservation.CategoryID, reservation.SeatCount); err != nil {
			return err
		}
		updated, err = s.orders.RecomputeTotal(ctx, reservation.OrderID)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.ReservationsCancelledTotal.Inc()
	metrics.SeatsReleasedTotal.Add(float64(reservation.SeatCount))
	s.invalidateFlights(ctx)
	s.log.Info("reservation cancelled",
		zap.Int64("reservation_id", id),
		zap.Int64("order_id", reservation.OrderID),
		zap.Int("seats", reservation.SeatCount),
	)
	return updated, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reservation.Passengers, err = s.passengers.ListByReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.reservations.ListByUser(ctx, userID)
}

func (s *ReservationService) recordRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientSeats):
		metrics.ReservationsRejectedTotal.WithLabelValues("insufficient_seats").Inc()
	case errors.Is(err, domain.ErrCategoryNotOffered):
		metrics.ReservationsRejectedTotal.WithLabelValues("category_not_offered").Inc()
	case errors.Is(err, domain.ErrOrderNotEditable):
		metrics.ReservationsRejectedTotal.WithLabelValues("order_not_editable").Inc()
	}
}

func (s *ReservationService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flights cache invalidation failed", zap.Error(err))
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
