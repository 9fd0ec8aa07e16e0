package service

import (
	"errors"
	"fmt"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidRestockAmount  = errors.New("restock amount must be positive")
)

type InventoryService interface {
	CreateItem(req *model.InventoryItem, operatorID string) error
	UpdateItem(id uuid.UUID, req *model.InventoryItem, operatorID string) (*model.InventoryItem, error)
	Restock(id uuid.UUID, amount decimal.Decimal, operatorID string) (*model.InventoryItem, error)
	GetItems(lowOnly bool) ([]model.InventoryItem, error)
	GetItemByID(id uuid.UUID) (*model.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(iRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: iRepo}
}

func (s *inventoryService) CreateItem(req *model.InventoryItem, operatorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.CreatedBy = operatorID
	req.UpdatedBy = operatorID
	return s.inventoryRepo.Create(req)
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *model.InventoryItem, operatorID string) (*model.InventoryItem, error) {
	existing, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrInventoryItemNotFound
	}

	existing.ItemName = req.ItemName
	existing.Quantity = req.Quantity
	existing.Unit = req.Unit
	existing.ReorderLevel = req.ReorderLevel
	existing.UpdatedBy = operatorID

	if err := s.inventoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Restock is a relative add, not an absolute write, so a concurrent
// checkout decrement is never lost.
func (s *inventoryService) Restock(id uuid.UUID, amount decimal.Decimal, operatorID string) (*model.InventoryItem, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidRestockAmount
	}

	if err := s.inventoryRepo.Restock(id, amount, operatorID); err != nil {
		return nil, ErrInventoryItemNotFound
	}
	return s.inventoryRepo.FindByID(id)
}

func (s *inventoryService) GetItems(lowOnly bool) ([]model.InventoryItem, error) {
	if lowOnly {
		return s.inventoryRepo.FindLowStock()
	}
	return s.inventoryRepo.FindAll()
}

func (s *inventoryService) GetItemByID(id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrInventoryItemNotFound
	}
	return item, nil
}
