package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"smartwash/internal/config"
	"smartwash/internal/db"
	apperrors "smartwash/internal/errors"
	"smartwash/internal/model"
	"smartwash/internal/repository"
	"smartwash/internal/service"
	"smartwash/internal/session"
)

const defaultSeedFile = "demo_data.json"

// SeedUser is one demo user, with the orders to create for them.
type SeedUser struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Orders   []SeedOrder `json:"orders"`
}

// SeedOrder is one demo order. Status, when set, is applied after creation
// the same way an admin would.
type SeedOrder struct {
	Service  string `json:"service"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Order{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}
	if err := db.EnsureDefaultAdmin(gormDB); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Infof("default administrator present (%s)", db.DefaultAdminEmail)

	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		seedFile = defaultSeedFile
	}
	users, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatalf("load seed file: %v", err)
	}
	log.Infof("loaded %d demo users from %s", len(users), seedFile)

	userRepo := repository.NewUserRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	// Sessions are irrelevant for seeding; a nil-cache store satisfies the manager.
	authService := service.NewAuthService(userRepo, session.NewManager(cfg.SessionSecret, session.NewRedisStore(nil)))
	orderService := service.NewOrderService(orderRepo)

	ctx := context.Background()
	created, skipped := 0, 0
	for _, su := range users {
		user, err := authService.Register(ctx, su.Name, su.Email, su.Password)
		if err == apperrors.ErrDuplicateEmail {
			log.Infof("skipping %s: already registered", su.Email)
			skipped++
			continue
		}
		if err != nil {
			log.Fatalf("register %s: %v", su.Email, err)
		}
		created++

		for _, so := range su.Orders {
			order, err := orderService.PlaceOrder(ctx, user.ID, so.Service, so.Quantity)
			if err != nil {
				log.Fatalf("place order for %s: %v", su.Email, err)
			}
			if so.Status != "" && so.Status != model.StatusPending {
				if err := orderService.UpdateStatus(ctx, order.ID, so.Status); err != nil {
					log.Fatalf("set status for order %d: %v", order.ID, err)
				}
			}
		}
	}

	log.Infof("seed completed: %d users created, %d skipped", created, skipped)
}

func loadSeedFile(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return users, nil
}
