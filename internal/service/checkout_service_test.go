package service

import (
	"sync"
	"testing"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckoutService(db *gorm.DB) CheckoutService {
	return NewCheckoutService(
		repository.NewOrderRepo(db),
		repository.NewInventoryRepo(db),
		db,
		nil,
	)
}

func cartFor(product *model.Product, quantity int) []CheckoutItem {
	return []CheckoutItem{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
	}}
}

func TestCheckoutCreatesOrderAndItems(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	taro, pearls := seedProduct(t, db, "Taro Milk Tea", "tapioca pearls", "100", "2")
	matcha, powder := seedProduct(t, db, "Matcha Latte", "matcha powder", "50", "1.5")

	result, err := svc.Checkout(&CheckoutRequest{
		Items:       append(cartFor(taro, 3), cartFor(matcha, 2)...),
		TotalAmount: dec("18.70"),
		Subtotal:    dec("17.00"),
		Tax:         dec("1.70"),
		CashierName: "Dana",
	}, "op-1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.OrderID)
	assert.True(t, result.TotalAmount.Equal(dec("18.70")))
	assert.Empty(t, result.Warnings)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(2), itemCount)

	var order model.Order
	require.NoError(t, db.Preload("Items").First(&order, "id = ?", result.OrderID).Error)
	assert.Equal(t, "Dana", order.CashierName)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
	assert.False(t, order.Reported)
	assert.False(t, order.OrderDate.IsZero())

	// Recipe decrements: 3 drinks x 2 pearls, 2 drinks x 1.5 powder
	var gotPearls, gotPowder model.InventoryItem
	require.NoError(t, db.First(&gotPearls, "id = ?", pearls.ID).Error)
	require.NoError(t, db.First(&gotPowder, "id = ?", powder.ID).Error)
	assert.True(t, gotPearls.Quantity.Equal(dec("94")), "pearls: %s", gotPearls.Quantity)
	assert.True(t, gotPowder.Quantity.Equal(dec("47")), "powder: %s", gotPowder.Quantity)
}

func TestCheckoutWarnsOnShortfallWithoutBlockingSale(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	// 5 units in stock, recipe needs 2 per drink: 4 drinks go 3 short
	boba, pearls := seedProduct(t, db, "Classic Boba", "tapioca pearls", "5", "2")

	result, err := svc.Checkout(&CheckoutRequest{
		Items:       cartFor(boba, 4),
		TotalAmount: dec("22.00"),
		Subtotal:    dec("20.00"),
		Tax:         dec("2.00"),
		CashierName: "Rin",
	}, "op-1")
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Classic Boba", result.Warnings[0].Product)
	assert.Equal(t, "tapioca pearls", result.Warnings[0].Ingredient)
	assert.Contains(t, result.Warnings[0].Message, "not enough tapioca pearls")

	// The decrement still landed and was not clamped at zero
	var got model.InventoryItem
	require.NoError(t, db.First(&got, "id = ?", pearls.ID).Error)
	assert.True(t, got.Quantity.Equal(dec("-3")), "quantity: %s", got.Quantity)

	// Warnings never roll the order back
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.Checkout(&CheckoutRequest{
		Items:       []CheckoutItem{},
		CashierName: "Dana",
	}, "op-1")
	require.ErrorIs(t, err, ErrEmptyCart)

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCheckoutRejectsMissingCashier(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	boba, _ := seedProduct(t, db, "Classic Boba", "tapioca pearls", "100", "2")

	_, err := svc.Checkout(&CheckoutRequest{
		Items:       cartFor(boba, 1),
		CashierName: "   ",
	}, "op-1")
	require.ErrorIs(t, err, ErrMissingCashier)

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCheckoutWithoutRecipeWarnsAndStillSells(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	// Product with no configured recipe at all
	product := &model.Product{Name: "Bottled Water", Category: "misc", Price: dec("2.00"), Available: true}
	require.NoError(t, db.Create(product).Error)

	result, err := svc.Checkout(&CheckoutRequest{
		Items:       cartFor(product, 1),
		TotalAmount: dec("2.00"),
		Subtotal:    dec("2.00"),
		Tax:         dec("0.00"),
		CashierName: "Rin",
	}, "op-1")
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Bottled Water", result.Warnings[0].Product)
	assert.Contains(t, result.Warnings[0].Message, "inventory tracking unavailable")

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestCheckoutRetryAfterCommit(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	boba, _ := seedProduct(t, db, "Classic Boba", "tapioca pearls", "100", "2")

	req := &CheckoutRequest{
		OrderNumber: "ORD-RETRY-1",
		Items:       cartFor(boba, 1),
		TotalAmount: dec("5.50"),
		Subtotal:    dec("5.00"),
		Tax:         dec("0.50"),
		CashierName: "Dana",
	}

	first, err := svc.Checkout(req, "op-1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.OrderID)

	// Simulated client retry after a dropped response: same receipt number
	second, err := svc.Checkout(req, "op-1")
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)

	// Known contract gap: the retry path does not recover the original
	// order id, only the receipt number.
	assert.Equal(t, uuid.Nil, second.OrderID)
	assert.Equal(t, "ORD-RETRY-1", second.OrderNumber)

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount, "retry must not create a second order")
}

func TestConcurrentCheckoutsBothDecrementsLand(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	// Two concurrent carts consuming the same ingredient: the relative
	// UPDATE guarantees Q - q1 - q2 regardless of interleaving.
	boba, pearls := seedProduct(t, db, "Classic Boba", "tapioca pearls", "100", "1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	quantities := []int{30, 45}
	for i, qty := range quantities {
		wg.Add(1)
		go func(i, qty int) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(&CheckoutRequest{
				Items:       cartFor(boba, qty),
				TotalAmount: dec("5.50"),
				Subtotal:    dec("5.00"),
				Tax:         dec("0.50"),
				CashierName: "Dana",
			}, "op-1")
		}(i, qty)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var got model.InventoryItem
	require.NoError(t, db.First(&got, "id = ?", pearls.ID).Error)
	assert.True(t, got.Quantity.Equal(dec("25")), "quantity: %s", got.Quantity)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.GetOrderByID(uuid.New())
	require.ErrorIs(t, err, ErrOrderNotFound)
}
