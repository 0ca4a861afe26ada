package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "smartwash/internal/errors"
	"smartwash/internal/model"
	"smartwash/internal/service"
)

// AdminHandler handles the admin dashboard: all orders plus status updates.
type AdminHandler struct {
	orderService service.OrderService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(orderService service.OrderService) *AdminHandler {
	return &AdminHandler{orderService: orderService}
}

// AdminView is the view-ready bundle rendered for the administrator.
type AdminView struct {
	Orders []model.OrderWithOwner `json:"orders"`
}

// UpdateStatusRequest represents the admin status-update form.
type UpdateStatusRequest struct {
	OrderID string `form:"order_id" validate:"required"`
	Status  string `form:"status" validate:"required"`
}

// GetAdminDashboard godoc
// @Summary List all orders with owner names
// @Tags admin
// @Produce json
// @Success 200 {object} AdminView
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin [get]
func (h *AdminHandler) GetAdminDashboard(c echo.Context) error {
	return h.render(c)
}

// UpdateOrderStatus godoc
// @Summary Update an order's status, then list all orders
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param order_id formData int true "Order ID"
// @Param status formData string true "New status (free text)"
// @Success 200 {object} AdminView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin [post]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orderID, err := strconv.Atoi(strings.TrimSpace(req.OrderID))
	if err != nil || orderID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_ORDER_ID",
		})
	}

	if err := h.orderService.UpdateStatus(c.Request().Context(), uint(orderID), req.Status); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Mutation done; re-query so the updated row shows up in the same response.
	return h.render(c)
}

func (h *AdminHandler) render(c echo.Context) error {
	orders, err := h.orderService.ListAllOrders(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, AdminView{Orders: orders})
}
