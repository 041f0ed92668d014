package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/skyreserva/internal/clock"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	Available(ctx context.Context) ([]domain.Flight, error)
	Cities(ctx context.Context) ([]domain.City, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	Categories(ctx context.Context) ([]domain.SeatCategory, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo    repository.FlightRepository
	catalog repository.CatalogRepository
	cache   FlightCache
	clock   clock.Clock
	log     *zap.Logger
}

type Option func(*FlightService)

func WithCache(cache FlightCache) Option {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *FlightService) {
		s.clock = c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *FlightService) {
		s.log = log
	}
}

func NewFlightService(repo repository.FlightRepository, catalog repository.CatalogRepository, opts ...Option) *FlightService {
	s := &FlightService{
		repo:    repo,
		catalog: catalog,
		clock:   clock.NewSystem(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List serves from cache when possible. Cache errors fall through to the database.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warn("flights cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flights cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.FareMin != nil && filter.FareMax != nil && filter.FareMin.GreaterThan(*filter.FareMax) {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Search(ctx, filter)
}

func (s *FlightService) Available(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.Available(ctx, s.clock.Now())
}

func (s *FlightService) Cities(ctx context.Context) ([]domain.City, error) {
	return s.catalog.Cities(ctx)
}

func (s *FlightService) Airlines(ctx context.Context) ([]domain.Airline, error) {
	return s.catalog.Airlines(ctx)
}

func (s *FlightService) Categories(ctx context.Context) ([]domain.SeatCategory, error) {
	return s.catalog.Categories(ctx)
}

// ParseDate accepts YYYY-MM-DD search dates.
func ParseDate(v string) (*time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

var _ FlightUseCase = (*FlightService)(nil)
