package service

import (
	"fmt"
	"testing"

	"go-boba-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. cache=shared is
// required so every pooled connection sees the same database; the pool is
// pinned to one connection to keep SQLite writers from tripping over each
// other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Product{}, &model.InventoryItem{}, &model.ProductIngredient{},
		&model.Order{}, &model.OrderItem{},
		&model.Employee{}, &model.Privilege{}, &model.Role{},
	))

	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedProduct creates a product with a single-ingredient recipe and returns both.
func seedProduct(t *testing.T, db *gorm.DB, name, ingredientName string, stock, perUnit string) (*model.Product, *model.InventoryItem) {
	t.Helper()

	item := &model.InventoryItem{
		ItemName:     ingredientName,
		Quantity:     dec(stock),
		Unit:         "g",
		ReorderLevel: dec("10"),
	}
	require.NoError(t, db.Create(item).Error)

	product := &model.Product{
		Name:      name,
		Category:  "milk-tea",
		Price:     dec("5.50"),
		Available: true,
	}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, db.Create(&model.ProductIngredient{
		ProductID:       product.ID,
		InventoryItemID: item.ID,
		QuantityNeeded:  dec(perUnit),
	}).Error)

	return product, item
}
