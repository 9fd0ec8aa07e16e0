package handler

import (
	"errors"
	"strconv"

	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.CheckoutService
}

func NewOrderHandler(s service.CheckoutService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Helpers to pull employee info from the JWT context (set by auth middleware)
func getEmployeeID(c *fiber.Ctx) string {
	employeeID := c.Locals("employee_id")
	if employeeID == nil {
		return "system"
	}
	return employeeID.(string)
}

func getEmployeeName(c *fiber.Ctx) string {
	employeeName := c.Locals("employee_name")
	if employeeName == nil {
		return "Unknown"
	}
	return employeeName.(string)
}

// Checkout handles POST /api/orders/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	result, err := h.service.Checkout(&req, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrMissingCashier) {
			return respondError(c, 400, err)
		}
		return respondError(c, 500, err)
	}

	if result.AlreadyProcessed {
		return respondOK(c, result, "Order already processed")
	}
	return respondCreated(c, result, "Order placed")
}

// History handles GET /api/orders/history
func (h *OrderHandler) History(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit < 0 {
		limit = 100
	}

	summaries, err := h.service.GetOrderHistory(limit)
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, summaries, "")
}

// GetOrder handles GET /api/orders/:orderId
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid order ID")
	}

	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 500, err)
	}

	return respondOK(c, fiber.Map{"order": order, "items": order.Items}, "")
}
