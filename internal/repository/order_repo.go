package repository

import (
	"time"

	"go-boba-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindAllSummaries(limit int) ([]model.OrderSummary, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByNumber(number string) (*model.Order, error)
	GetDashboardStats() (*DashboardStats, error)
	GetTopItems(since time.Time, limit int) ([]TopItem, error)
}

// DashboardStats for the manager overview
type DashboardStats struct {
	OrdersToday   int64           `json:"orders_today"`
	RevenueToday  decimal.Decimal `json:"revenue_today"`
	OrdersTotal   int64           `json:"orders_total"`
	RevenueTotal  decimal.Decimal `json:"revenue_total"`
	LowStockCount int64           `json:"low_stock_count"`
}

// TopItem is one row of the best-sellers chart
type TopItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) FindAllSummaries(limit int) ([]model.OrderSummary, error) {
	var summaries []model.OrderSummary
	q := r.db.Model(&model.Order{}).
		Select(`orders.id, orders.order_number, orders.order_date, orders.total_amount,
			orders.cashier_name, orders.status,
			(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count`).
		Order("orders.order_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&summaries).Error
	return summaries, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByNumber(number string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "order_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		RevenueToday: decimal.Zero,
		RevenueTotal: decimal.Zero,
	}

	// Midnight in the store's timezone, not the UTC day boundary
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := r.db.Model(&model.Order{}).
		Where("status = ? AND order_date >= ?", model.OrderStatusCompleted, startOfDay).
		Count(&stats.OrdersToday).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ? AND order_date >= ?", model.OrderStatusCompleted, startOfDay).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.RevenueToday).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).Count(&stats.OrdersTotal).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.RevenueTotal).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.InventoryItem{}).
		Where("quantity <= reorder_level").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *orderRepo) GetTopItems(since time.Time, limit int) ([]TopItem, error) {
	var items []TopItem
	err := r.db.Model(&model.OrderItem{}).
		Select(`order_items.product_id, order_items.product_name,
			COALESCE(SUM(order_items.quantity), 0) AS units_sold,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) AS revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ? AND orders.order_date >= ?", model.OrderStatusCompleted, since).
		Group("order_items.product_id, order_items.product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&items).Error
	return items, err
}
