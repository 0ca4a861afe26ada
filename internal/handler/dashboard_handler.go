package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "smartwash/internal/errors"
	"smartwash/internal/model"
	"smartwash/internal/service"
	"smartwash/internal/session"
)

// DashboardHandler handles the user dashboard: own orders plus order placement.
type DashboardHandler struct {
	orderService service.OrderService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(orderService service.OrderService) *DashboardHandler {
	return &DashboardHandler{orderService: orderService}
}

// DashboardView is the view-ready bundle rendered for a logged-in user.
type DashboardView struct {
	Name           string        `json:"name"`
	Orders         []model.Order `json:"orders"`
	PaymentAllowed bool          `json:"payment_allowed"`
}

// GetDashboard godoc
// @Summary List own orders
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardView
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	ident, err := currentIdentity(c)
	if ident == nil {
		return err
	}
	return h.render(c, ident)
}

// PlaceOrder godoc
// @Summary Place an order, then list own orders
// @Tags dashboard
// @Accept x-www-form-urlencoded
// @Produce json
// @Param service formData string true "Service name (Wash, Dry, Iron)"
// @Param quantity formData int true "Unit count"
// @Success 200 {object} DashboardView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [post]
func (h *DashboardHandler) PlaceOrder(c echo.Context) error {
	ident, err := currentIdentity(c)
	if ident == nil {
		return err
	}

	serviceName := c.FormValue("service")
	quantity, err := strconv.Atoi(strings.TrimSpace(c.FormValue("quantity")))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidQuantity)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if _, err := h.orderService.PlaceOrder(c.Request().Context(), ident.UserID, serviceName, quantity); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Mutation done; re-query so the new order shows up in the same response.
	return h.render(c, ident)
}

func (h *DashboardHandler) render(c echo.Context, ident *session.Identity) error {
	orders, err := h.orderService.ListOwnOrders(c.Request().Context(), ident.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DashboardView{
		Name:           ident.Name,
		Orders:         orders,
		PaymentAllowed: h.orderService.PaymentAllowed(orders),
	})
}
