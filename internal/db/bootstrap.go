package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartwash/internal/model"
)

// Default administrator seeded on first run. The plaintext constant is
// hashed before insertion.
const (
	DefaultAdminName     = "Admin"
	DefaultAdminEmail    = "admin@smartwash.com"
	DefaultAdminPassword = "admin123"
)

const bcryptCost = 10

// EnsureDefaultAdmin inserts the default administrator when no admin row
// exists yet. Idempotent: repeated calls leave exactly one admin.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         DefaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
