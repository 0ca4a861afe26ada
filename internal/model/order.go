package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses the application itself assigns or inspects. The admin
// may overwrite Status with arbitrary text, so this is not a closed set.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Order is a single laundry service order placed by a user.
type Order struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	Service    string          `json:"service" gorm:"size:50;not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status     string          `json:"status" gorm:"size:50;not null;default:'Pending';index"`
	CreatedAt  time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// OrderWithOwner is the admin read model: an order row joined with the
// owning user's display name.
type OrderWithOwner struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	Service      string          `json:"service"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	CustomerName string          `json:"customer_name"`
}
