package repository

import (
	"go-boba-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll() ([]model.InventoryItem, error)
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindLowStock() ([]model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Restock(id uuid.UUID, amount decimal.Decimal, updatedBy string) error
	ApplyDecrement(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error
	RecipeForProduct(tx *gorm.DB, productID uuid.UUID) ([]model.ProductIngredient, error)
	ReplaceRecipe(productID uuid.UUID, ingredients []model.ProductIngredient) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Order("item_name").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) FindLowStock() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("quantity <= reorder_level").Order("item_name").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

// Restock adds to quantity relative to the current value, same shape as the
// checkout decrement, so concurrent restocks and sales both land.
func (r *inventoryRepo) Restock(id uuid.UUID, amount decimal.Decimal, updatedBy string) error {
	res := r.db.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", amount),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyDecrement runs the relative update inside the caller's transaction.
// No floor: quantity may go negative, the sale is never blocked.
func (r *inventoryRepo) ApplyDecrement(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity - ?", amount)).Error
}

func (r *inventoryRepo) RecipeForProduct(tx *gorm.DB, productID uuid.UUID) ([]model.ProductIngredient, error) {
	var recipe []model.ProductIngredient
	err := tx.Preload("InventoryItem").Where("product_id = ?", productID).Find(&recipe).Error
	return recipe, err
}

// ReplaceRecipe swaps a product's full ingredient list atomically.
func (r *inventoryRepo) ReplaceRecipe(productID uuid.UUID, ingredients []model.ProductIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].ProductID = productID
		}
		if len(ingredients) == 0 {
			return nil
		}
		return tx.Create(&ingredients).Error
	})
}
