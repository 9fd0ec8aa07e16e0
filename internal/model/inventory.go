package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a raw ingredient (tapioca pearls, milk, cups, ...).
// Quantity is allowed to go negative: a sale is never blocked on stock,
// the shortfall only surfaces as a checkout warning.
type InventoryItem struct {
	BaseModel
	ItemName     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"item_name" validate:"required"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Unit         string          `gorm:"type:varchar(20)" json:"unit"`
	ReorderLevel decimal.Decimal `gorm:"type:numeric(12,3)" json:"reorder_level"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ProductIngredient maps a product to one inventory item of its recipe.
// Read-only from the checkout path; managed by the recipe endpoints.
type ProductIngredient struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient" json:"product_id" validate:"uuid_required"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient" json:"inventory_item_id" validate:"uuid_required"`
	InventoryItem   *InventoryItem  `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	QuantityNeeded  decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity_needed" validate:"positive_decimal"`
}

func (ProductIngredient) TableName() string {
	return "product_ingredients"
}
