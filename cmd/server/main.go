package main

import (
	"net/http"

	_ "smartwash/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"smartwash/internal/cache"
	"smartwash/internal/config"
	"smartwash/internal/db"
	"smartwash/internal/handler"
	"smartwash/internal/model"
	"smartwash/internal/repository"
	"smartwash/internal/router"
	"smartwash/internal/service"
	"smartwash/internal/session"
)

// @title SmartWash API
// @version 1.0
// @description Laundry ordering service with session-cookie authentication, per-user dashboards and an admin order console.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations and seed the default administrator.
	if err := gormDB.AutoMigrate(&model.User{}, &model.Order{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}
	if err := db.EnsureDefaultAdmin(gormDB); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize session plumbing
	sessionStore := session.NewRedisStore(cacheClient)
	sessionManager := session.NewManager(cfg.SessionSecret, sessionStore)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionManager)
	orderService := service.NewOrderService(orderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(orderService)
	adminHandler := handler.NewAdminHandler(orderService)

	// Register routes
	router.Register(e, cfg, sessionStore, authHandler, dashboardHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	log.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
