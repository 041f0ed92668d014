package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/skyreserva/internal/clock"
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

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:              4,
			Number:          "SR101",
			OriginCity:      "Quito",
			DestinationCity: "Guayaquil",
			DepartureAt:     time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC),
			ArrivalAt:       time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC),
			Status:          domain.FlightStatusScheduled,
			Categories: []domain.FlightCategory{
				{FlightID: 4, CategoryID: 1, TotalSeats: 150, AvailableSeats: 149, BasePrice: decimal.NewFromInt(150)},
			},
		},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, nil, WithCache(mockCache))
	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, nil, WithCache(mockCache))
	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertNotCalled(t, "List", ctx)
}

func TestFlightService_List_CacheErrorFallsBack(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, nil, WithCache(mockCache))
	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(errors.New("redis down")).Once()

	result, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, flights, result)
}

func TestFlightService_List_NoCache(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(nil, errors.New("db error")).Once()

	_, err := service.List(ctx)
	assert.EqualError(t, err, "db error")
}

func TestFlightService_GetByID(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	_, err := service.GetByID(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	mockRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrFlightNotFound).Once()
	_, err = service.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestFlightService_Search_RejectsInvertedFareRange(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	service := NewFlightService(mockRepo, nil)
	lo, hi := decimal.NewFromInt(500), decimal.NewFromInt(100)

	_, err := service.Search(context.Background(), domain.FlightFilter{FareMin: &lo, FareMax: &hi})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Search(context.Background(), domain.FlightFilter{Status: "boarding"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestFlightService_Available_UsesClock(t *testing.T) {
	mockRepo := &mocks.FlightRepository{}
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	service := NewFlightService(mockRepo, nil, WithClock(clock.NewFixed(now)))
	ctx := context.Background()

	mockRepo.On("Available", ctx, now).Return(sampleFlights(), nil).Once()

	result, err := service.Available(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	mockRepo.AssertExpectations(t)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-24")
	require.NoError(t, err)
	assert.Equal(t, 24, d.Day())

	_, err = ParseDate("24/12/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
