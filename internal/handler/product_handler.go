package handler

import (
	"errors"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.Query("category"))
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, products, "")
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid product ID")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, 404, err)
	}
	return respondOK(c, product, "")
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateProduct(&product, getEmployeeID(c), getEmployeeName(c)); err != nil {
		if errors.Is(err, service.ErrProductExists) {
			return respondError(c, 409, err)
		}
		return respondError(c, 400, err)
	}
	return respondCreated(c, product, "Product created")
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid product ID")
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(id, &product, getEmployeeID(c), getEmployeeName(c))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 400, err)
	}
	return respondOK(c, updated, "Product updated")
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(id, getEmployeeID(c)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 500, err)
	}
	return respondOK(c, nil, "Product deleted")
}

func (h *ProductHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid product ID")
	}

	recipe, err := h.service.GetRecipe(id)
	if err != nil {
		return respondError(c, 404, err)
	}
	return respondOK(c, recipe, "")
}

func (h *ProductHandler) ReplaceRecipe(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid product ID")
	}

	var ingredients []model.ProductIngredient
	if err := c.BodyParser(&ingredients); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	if err := h.service.ReplaceRecipe(id, ingredients); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 400, err)
	}
	return respondOK(c, nil, "Recipe updated")
}
