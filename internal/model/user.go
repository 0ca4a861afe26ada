package model

import "time"

// Roles assignable to a user. Registration always produces RoleUser;
// the single RoleAdmin row is seeded at startup.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or the seeded administrator.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'user';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
