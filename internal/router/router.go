package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smartwash/internal/config"
	"smartwash/internal/handler"
	"smartwash/internal/model"
	"smartwash/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/login")
	})
	e.POST("/", authHandler.Login)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	auth := cookieAuth(cfg.SessionSecret)
	identity := resolveIdentity(sessions)

	// User dashboard (role "user" only)
	dashboard := e.Group("/dashboard", auth, identity, requireRole(model.RoleUser))
	dashboard.GET("", dashboardHandler.GetDashboard)
	dashboard.POST("", dashboardHandler.PlaceOrder)

	// Admin dashboard (role "admin" only)
	admin := e.Group("/admin", auth, identity, requireRole(model.RoleAdmin))
	admin.GET("", adminHandler.GetAdminDashboard)
	admin.POST("", adminHandler.UpdateOrderStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
