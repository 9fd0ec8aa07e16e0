package handler

import (
	"errors"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.GetItems(c.Query("low") == "true")
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, items, "")
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid inventory ID")
	}

	item, err := h.service.GetItemByID(id)
	if err != nil {
		return respondError(c, 404, err)
	}
	return respondOK(c, item, "")
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateItem(&item, getEmployeeID(c)); err != nil {
		return respondError(c, 400, err)
	}
	return respondCreated(c, item, "Inventory item created")
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid inventory ID")
	}

	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateItem(id, &item, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrInventoryItemNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 400, err)
	}
	return respondOK(c, updated, "Inventory item updated")
}

type restockRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid inventory ID")
	}

	var req restockRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	item, err := h.service.Restock(id, req.Amount, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRestockAmount) {
			return respondError(c, 400, err)
		}
		return respondError(c, 404, err)
	}
	return respondOK(c, item, "Inventory restocked")
}
