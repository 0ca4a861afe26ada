package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "smartwash/internal/errors"
	"smartwash/internal/model"
	"smartwash/internal/repository"
)

// OrderService handles order placement, listing and status transitions.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uint, serviceName string, quantity int) (*model.Order, error)
	ListOwnOrders(ctx context.Context, userID uint) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.OrderWithOwner, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
	PaymentAllowed(orders []model.Order) bool
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

// PlaceOrder creates a "Pending" order priced from the fixed table.
// Quantity must be a positive integer; the service name is an open set.
func (s *orderService) PlaceOrder(ctx context.Context, userID uint, serviceName string, quantity int) (*model.Order, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	order := &model.Order{
		UserID:     userID,
		Service:    serviceName,
		Quantity:   quantity,
		TotalPrice: unitPrice(serviceName).Mul(decimal.NewFromInt(int64(quantity))),
		Status:     model.StatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// ListOwnOrders returns the user's orders, newest first.
func (s *orderService) ListOwnOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAllOrders returns every order paired with its owner's name, newest first.
func (s *orderService) ListAllOrders(ctx context.Context) ([]model.OrderWithOwner, error) {
	return s.orders.ListAllWithOwner(ctx)
}

// UpdateStatus overwrites one order's status with admin-supplied text.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrderNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// PaymentAllowed reports whether at least one order is exactly "Completed".
// Derived view state, never persisted.
func (s *orderService) PaymentAllowed(orders []model.Order) bool {
	for _, order := range orders {
		if order.Status == model.StatusCompleted {
			return true
		}
	}
	return false
}
