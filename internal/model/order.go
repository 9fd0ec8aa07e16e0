package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderStatusCompleted = "completed"
	OrderStatusVoided    = "voided"
)

// Order is created exactly once at checkout and is immutable afterwards,
// except for Reported which the shift close (Z-report) flips to true.
type Order struct {
	BaseModel
	// Human receipt number; unique so a retried checkout collides instead
	// of double-charging the customer.
	OrderNumber string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	OrderDate   time.Time       `gorm:"not null;index" json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Tax         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax"`
	CashierName string          `gorm:"type:varchar(255);not null" json:"cashier_name"`
	Status      string          `gorm:"type:varchar(20);index" json:"status"`
	Reported    bool            `gorm:"default:false;index" json:"reported"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is one cart line, with the price snapshotted at time of sale.
// (order_id, product_id) is unique so a retried request cannot duplicate a line.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_product" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderSummary for the history listing (no line items)
type OrderSummary struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CashierName string          `json:"cashier_name"`
	Status      string          `json:"status"`
	ItemCount   int64           `json:"item_count"`
}
