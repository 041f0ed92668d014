package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/cards"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockCardUseCase struct {
	mock.Mock
}

func (m *MockCardUseCase) card(args mock.Arguments) (*domain.CreditCard, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditCard), args.Error(1)
}

func (m *MockCardUseCase) Create(ctx context.Context, input cards.CreateInput) (*domain.CreditCard, error) {
	return m.card(m.Called(ctx, input))
}

func (m *MockCardUseCase) Get(ctx context.Context, id int64) (*domain.CreditCard, error) {
	return m.card(m.Called(ctx, id))
}

func (m *MockCardUseCase) List(ctx context.Context) ([]domain.CreditCard, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CreditCard), args.Error(1)
}

func (m *MockCardUseCase) ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CreditCard), args.Error(1)
}

func (m *MockCardUseCase) Update(ctx context.Context, id int64, input cards.UpdateInput) (*domain.CreditCard, error) {
	return m.card(m.Called(ctx, id, input))
}

func (m *MockCardUseCase) Deactivate(ctx context.Context, id int64) (*domain.CreditCard, error) {
	return m.card(m.Called(ctx, id))
}

func (m *MockCardUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestCardHandler_create_MasksNumber(t *testing.T) {
	mockService := &MockCardUseCase{}
	handler := NewCardHandler(mockService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/cards", gin.H{
		"user_id": 1, "number": "4111111111111234", "holder": "Ana Torres", "expiry": "2028-12-31", "type": "Visa",
	})

	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("cards.CreateInput")).Return(&domain.CreditCard{
		ID: 4, UserID: 1, Last4: "1234", Holder: "Ana Torres", Type: domain.CardVisa, Active: true,
		Expiry: time.Date(2028, 12, 31, 0, 0, 0, 0, time.UTC),
	}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"masked_number":"****1234"`)
	assert.Contains(t, w.Body.String(), `"expiry":"2028-12-31"`)
	assert.NotContains(t, w.Body.String(), "4111111111111234")
}

func TestCardHandler_delete_InUse(t *testing.T) {
	mockService := &MockCardUseCase{}
	handler := NewCardHandler(mockService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("DELETE", "/cards/4", nil)

	mockService.On("Delete", c.Request.Context(), int64(4)).Return(domain.ErrCardInUse)

	handler.delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
