package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/reservations"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Create(ctx context.Context, input reservations.CreateInput) (*reservations.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservations.Result), args.Error(1)
}

func (m *MockReservationUseCase) Delete(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockReservationUseCase) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func TestReservationHandler_create(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewReservationHandler(mockService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/reservations", gin.H{"order_id": 1, "flight_id": 7, "category_id": 2, "seat_count": 2})

	input := reservations.CreateInput{OrderID: 1, FlightID: 7, CategoryID: 2, SeatCount: 2}
	mockService.On("Create", c.Request.Context(), input).Return(&reservations.Result{
		Reservation: domain.Reservation{ID: 5, SeatCount: 2, Subtotal: decimal.NewFromInt(300)},
		Order:       domain.Order{ID: 1, Total: decimal.NewFromInt(300)},
	}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"300"`)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_create_InsufficientSeats(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewReservationHandler(mockService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/reservations", gin.H{"order_id": 1, "flight_id": 7, "category_id": 2, "seat_count": 5})

	mockService.On("Create", c.Request.Context(), mock.Anything).
		Return(nil, &domain.InsufficientSeatsError{Available: 3, Requested: 5})

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "only 3 available")
}

func TestReservationHandler_delete_PaidOrder(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewReservationHandler(mockService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("DELETE", "/reservations/5", nil)

	mockService.On("Delete", c.Request.Context(), int64(5)).Return(nil, domain.ErrOrderNotEditable)

	handler.delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"order_not_editable"`)
}
