package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/internal/ws"
	"go-boba-pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrProductExists   = errors.New("product name already exists")
	ErrProductNotFound = errors.New("product not found")
)

type CatalogService interface {
	CreateProduct(req *model.Product, operatorID, operatorName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, operatorID, operatorName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, operatorID string) error
	GetProducts(category string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetRecipe(productID uuid.UUID) ([]model.ProductIngredient, error)
	ReplaceRecipe(productID uuid.UUID, ingredients []model.ProductIngredient) error
}

type catalogService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	wsHub         *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, iRepo repository.InventoryRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		wsHub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, operatorID, operatorName string) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Duplicate name guard
	existing, _ := s.productRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrProductExists
	}

	// 3. Audit fields
	req.CreatedBy = operatorID
	req.UpdatedBy = operatorID
	req.CreatedByUserID = &operatorID
	req.UpdatedByUserID = &operatorID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.broadcastCatalogChange("product_created", req, operatorName)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, operatorID, operatorName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Available = req.Available
	existing.ImageURL = req.ImageURL
	existing.UpdatedBy = operatorID
	existing.UpdatedByUserID = &operatorID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.broadcastCatalogChange("product_updated", existing, operatorName)
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, operatorID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id, operatorID)
}

func (s *catalogService) GetProducts(category string) ([]model.Product, error) {
	return s.productRepo.FindAll(category)
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetRecipe(productID uuid.UUID) ([]model.ProductIngredient, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product.Ingredients, nil
}

func (s *catalogService) ReplaceRecipe(productID uuid.UUID, ingredients []model.ProductIngredient) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return ErrProductNotFound
	}
	for i := range ingredients {
		if errs := validator.ValidateStruct(&ingredients[i]); len(errs) > 0 {
			firstErr := errs[0]
			return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
		}
	}
	return s.inventoryRepo.ReplaceRecipe(productID, ingredients)
}

func (s *catalogService) broadcastCatalogChange(action string, product *model.Product, operatorName string) {
	if s.wsHub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   "catalog_update",
		"action": action,
		"product": map[string]interface{}{
			"id":        product.ID,
			"name":      product.Name,
			"category":  product.Category,
			"price":     product.Price,
			"available": product.Available,
		},
		"message": fmt.Sprintf("%s %s '%s'", operatorName, actionVerb(action), product.Name),
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg
}

func actionVerb(action string) string {
	if action == "product_created" {
		return "created product"
	}
	return "updated product"
}
