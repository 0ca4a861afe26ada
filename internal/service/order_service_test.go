package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "smartwash/internal/errors"
	"smartwash/internal/model"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderWithOwner), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func TestOrderService_PlaceOrder_Pricing(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		quantity int
		total    int64
	}{
		{"wash", "Wash", 3, 150},
		{"dry", "Dry", 2, 64},
		{"iron", "Iron", 5, 100},
		{"unknown service prices at zero", "Mystery", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

			svc := NewOrderService(mockRepo)
			order, err := svc.PlaceOrder(context.Background(), 1, tt.service, tt.quantity)

			assert.NoError(t, err)
			assert.NotNil(t, order)
			assert.Equal(t, uint(1), order.UserID)
			assert.Equal(t, tt.service, order.Service)
			assert.Equal(t, tt.quantity, order.Quantity)
			assert.Equal(t, model.StatusPending, order.Status)
			assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(tt.total)),
				"total %s, want %d", order.TotalPrice, tt.total)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_PlaceOrder_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)

		order, err := svc.PlaceOrder(context.Background(), 1, "Wash", quantity)

		assert.Equal(t, apperrors.ErrInvalidQuantity, err)
		assert.Nil(t, order)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("existing order", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockRepo.On("UpdateStatus", mock.Anything, uint(4), "Completed").Return(nil)

		svc := NewOrderService(mockRepo)
		assert.NoError(t, svc.UpdateStatus(context.Background(), 4, "Completed"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockRepo.On("UpdateStatus", mock.Anything, uint(99), "Completed").Return(gorm.ErrRecordNotFound)

		svc := NewOrderService(mockRepo)
		assert.Equal(t, apperrors.ErrOrderNotFound, svc.UpdateStatus(context.Background(), 99, "Completed"))
	})
}

func TestOrderService_PaymentAllowed(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository))

	tests := []struct {
		name    string
		orders  []model.Order
		allowed bool
	}{
		{"no orders", nil, false},
		{"no completed orders", []model.Order{{Status: "Pending"}, {Status: "Washing"}}, false},
		{"one completed order", []model.Order{{Status: "Pending"}, {Status: "Completed"}}, true},
		{"status comparison is case-sensitive", []model.Order{{Status: "completed"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, svc.PaymentAllowed(tt.orders))
		})
	}
}
