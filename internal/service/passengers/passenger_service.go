package passengers

import (
	"context"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/service/orders"
	"go.uber.org/zap"
)

type PassengerUseCase interface {
	Create(ctx context.Context, input Input) (*domain.Passenger, error)
	Get(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context, reservationID int64) ([]domain.Passenger, error)
	Update(ctx context.Context, id int64, input Input) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
}

// Input carries passenger data. FareClass is optional and only checked against the age.
type Input struct {
	ReservationID int64            `json:"reservation_id"`
	Name          string           `json:"name"`
	DocumentID    string           `json:"document_id"`
	Age           *int             `json:"age"`
	FareClass     domain.FareClass `json:"fare_class"`
}

type PassengerService struct {
	tx           orders.TxRunner
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	passengers   repository.PassengerRepository
	log          *zap.Logger
}

type Option func(*PassengerService)

func WithLogger(log *zap.Logger) Option {
	return func(s *PassengerService) {
		s.log = log
	}
}

func NewPassengerService(
	tx orders.TxRunner,
	orderRepo repository.OrderRepository,
	reservations repository.ReservationRepository,
	passengers repository.PassengerRepository,
	opts ...Option,
) *PassengerService {
	s := &PassengerService{
		tx:           tx,
		orders:       orderRepo,
		reservations: reservations,
		passengers:   passengers,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PassengerService) Create(ctx context.Context, input Input) (*domain.Passenger, error) {
	if input.ReservationID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if input.Age == nil {
		return nil, domain.ErrInvalidAge
	}
	passenger, err := domain.NewPassenger(input.ReservationID, input.Name, input.DocumentID, *input.Age, input.FareClass)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		reservation, err := s.lockReservation(ctx, input.ReservationID)
		if err != nil {
			return err
		}
		count, err := s.passengers.CountByReservation(ctx, reservation.ID)
		if err != nil {
			return err
		}
		if count >= reservation.SeatCount {
			return domain.ErrReservationFull
		}
		return s.passengers.Create(ctx, &passenger)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("passenger added",
		zap.Int64("passenger_id", passenger.ID),
		zap.Int64("reservation_id", passenger.ReservationID),
		zap.String("fare_class", string(passenger.FareClass)),
	)
	return &passenger, nil
}

func (s *PassengerService) Get(ctx context.Context, id int64) (*domain.Passenger, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.passengers.GetByID(ctx, id)
}

// List returns all passengers, or those of one reservation when reservationID > 0.
func (s *PassengerService) List(ctx context.Context, reservationID int64) ([]domain.Passenger, error) {
	if reservationID > 0 {
		return s.passengers.ListByReservation(ctx, reservationID)
	}
	return s.passengers.List(ctx)
}

// Update replaces name, document and age, deriving the fare class again.
func (s *PassengerService) Update(ctx context.Context, id int64, input Input) (*domain.Passenger, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	var updated domain.Passenger
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.passengers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.lockReservation(ctx, current.ReservationID); err != nil {
			return err
		}

		name, document, age := current.Name, current.DocumentID, current.Age
		if input.Name != "" {
			name = input.Name
		}
		if input.DocumentID != "" {
			document = input.DocumentID
		}
		if input.Age != nil {
			age = *input.Age
		}
		updated, err = domain.NewPassenger(current.ReservationID, name, document, age, input.FareClass)
		if err != nil {
			return err
		}
		updated.ID = id
		return s.passengers.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.passengers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.lockReservation(ctx, current.ReservationID); err != nil {
			return err
		}
		return s.passengers.Delete(ctx, id)
	})
}

// lockReservation locks the owning order and fails unless it is still a cart.
func (s *PassengerService) lockReservation(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetForUpdate(ctx, reservation.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.Editable() {
		return nil, domain.ErrOrderNotEditable
	}
	return reservation, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
