package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name      string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Category  string          `gorm:"type:varchar(100);index" json:"category"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Available bool            `gorm:"default:true" json:"available"`
	ImageURL  string          `gorm:"type:text" json:"image_url,omitempty"`

	// Recipe: how much raw inventory one unit of this product consumes
	Ingredients []ProductIngredient `json:"ingredients,omitempty"`

	// User tracking
	CreatedByUserID *string   `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string   `gorm:"type:uuid" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *Employee `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *Employee `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}
