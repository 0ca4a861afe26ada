package repository

import (
	"context"

	"gorm.io/gorm"

	"smartwash/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order record.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListByUser returns a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllWithOwner returns every order joined with the owning user's name,
// newest first.
func (r *orderRepository) ListAllWithOwner(ctx context.Context) ([]model.OrderWithOwner, error) {
	var rows []model.OrderWithOwner
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.id, orders.user_id, orders.service, orders.quantity, orders.total_price, orders.status, orders.created_at, users.name AS customer_name").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus overwrites the status of one order. Returns
// gorm.ErrRecordNotFound when the id matches no row. Existence is checked
// with a read rather than RowsAffected: the mysql driver counts changed
// rows, not matched rows, so a same-value update would look like a miss.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	var order model.Order
	if err := r.db.WithContext(ctx).Select("id").First(&order, orderID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}
