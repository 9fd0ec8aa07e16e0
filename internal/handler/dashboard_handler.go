package handler

import (
	"strconv"

	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the manager overview statistics
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, stats, "")
}

// GetTopItems returns best sellers for the chart
// Query params: days (default 7), limit (default 10)
func (h *DashboardHandler) GetTopItems(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	items, err := h.service.GetTopItems(days, limit)
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, fiber.Map{"period_days": days, "items": items}, "")
}
