package service

import (
	"testing"
	"time"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsCountsTodayInLocalTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepo(db))

	now := time.Now()
	seedCompletedOrder(t, db, "ORD-NOW", "10.00", now)
	// Just after local midnight still counts as today
	seedCompletedOrder(t, db, "ORD-EARLY", "5.00",
		time.Date(now.Year(), now.Month(), now.Day(), 0, 15, 0, 0, now.Location()))
	seedCompletedOrder(t, db, "ORD-OLD", "15.00", now.Add(-48*time.Hour))

	voided := &model.Order{
		OrderNumber: "ORD-VOID",
		OrderDate:   now,
		TotalAmount: dec("99.00"),
		Subtotal:    dec("99.00"),
		Tax:         dec("0"),
		CashierName: "Dana",
		Status:      model.OrderStatusVoided,
	}
	require.NoError(t, db.Create(voided).Error)

	item := &model.InventoryItem{ItemName: "cups", Quantity: dec("5"), Unit: "pc", ReorderLevel: dec("10")}
	require.NoError(t, db.Create(item).Error)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.OrdersToday)
	assert.True(t, stats.RevenueToday.Equal(dec("15.00")), "today: %s", stats.RevenueToday)
	assert.Equal(t, int64(3), stats.OrdersTotal)
	assert.True(t, stats.RevenueTotal.Equal(dec("30.00")), "total: %s", stats.RevenueTotal)
	assert.Equal(t, int64(1), stats.LowStockCount)
}

func TestTopItemsRanksByUnitsSold(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepo(db))

	order := &model.Order{
		OrderNumber: "ORD-1",
		OrderDate:   time.Now(),
		TotalAmount: dec("21.50"),
		Subtotal:    dec("21.50"),
		Tax:         dec("0"),
		CashierName: "Dana",
		Status:      model.OrderStatusCompleted,
	}
	require.NoError(t, db.Create(order).Error)

	tarotID, matchaID := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID: order.ID, ProductID: tarotID, ProductName: "Taro Milk Tea",
		Quantity: 3, Price: dec("5.50"),
	}).Error)
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID: order.ID, ProductID: matchaID, ProductName: "Matcha Latte",
		Quantity: 1, Price: dec("5.00"),
	}).Error)

	items, err := svc.GetTopItems(7, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Taro Milk Tea", items[0].ProductName)
	assert.Equal(t, int64(3), items[0].UnitsSold)
	assert.True(t, items[0].Revenue.Equal(dec("16.50")), "revenue: %s", items[0].Revenue)
	assert.Equal(t, "Matcha Latte", items[1].ProductName)
}
