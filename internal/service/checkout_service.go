package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/internal/ws"
	"go-boba-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart      = errors.New("cart must contain at least one item")
	ErrMissingCashier = errors.New("cashier name is required")
	ErrOrderNotFound  = errors.New("order not found")
)

type CheckoutService interface {
	Checkout(req *CheckoutRequest, operatorID string) (*CheckoutResult, error)
	GetOrderHistory(limit int) ([]model.OrderSummary, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
}

// CheckoutItem is one cart line as submitted by the register. Field names
// follow the register client's wire contract (camelCase).
type CheckoutItem struct {
	ProductID   uuid.UUID       `json:"productId" validate:"uuid_required"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
}

// CheckoutRequest carries the cart plus the totals the client computed.
// Totals are stored as given; the register owns pricing.
type CheckoutRequest struct {
	// Optional client-supplied receipt number. Acts as the idempotency key:
	// resubmitting the same number cannot create a second order.
	OrderNumber string          `json:"orderNumber"`
	Items       []CheckoutItem  `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	CashierName string          `json:"cashierName"`
}

// InventoryWarning is a non-fatal advisory attached to a successful checkout.
type InventoryWarning struct {
	Product    string `json:"product"`
	Ingredient string `json:"ingredient,omitempty"`
	Message    string `json:"message"`
}

type CheckoutResult struct {
	OrderID          uuid.UUID          `json:"orderId"`
	OrderNumber      string             `json:"orderNumber"`
	TotalAmount      decimal.Decimal    `json:"totalAmount"`
	Warnings         []InventoryWarning `json:"warnings"`
	AlreadyProcessed bool               `json:"alreadyProcessed,omitempty"`
}

type checkoutService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewCheckoutService(oRepo repository.OrderRepository, iRepo repository.InventoryRepository, db *gorm.DB, hub *ws.Hub) CheckoutService {
	return &checkoutService{
		orderRepo:     oRepo,
		inventoryRepo: iRepo,
		db:            db,
		wsHub:         hub,
	}
}

// Checkout turns a cart into a durable order in a single transaction:
// one order row, one order_items row per cart line, and a relative
// inventory decrement per recipe ingredient. Inventory shortfalls never
// fail the sale; they come back as warnings.
func (s *checkoutService) Checkout(req *CheckoutRequest, operatorID string) (*CheckoutResult, error) {
	// 1. Fail fast before any transaction is opened
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(req.CashierName) == "" {
		return nil, ErrMissingCashier
	}
	for _, item := range req.Items {
		if errs := validator.ValidateStruct(&item); len(errs) > 0 {
			firstErr := errs[0]
			return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
		}
	}

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = newOrderNumber()
	}

	warnings := make([]InventoryWarning, 0)
	var order model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 2. Insert the order header with a server-assigned timestamp
		order = model.Order{
			OrderNumber: orderNumber,
			OrderDate:   time.Now(),
			TotalAmount: req.TotalAmount,
			Subtotal:    req.Subtotal,
			Tax:         req.Tax,
			CashierName: req.CashierName,
			Status:      model.OrderStatusCompleted,
		}
		order.CreatedBy = operatorID
		order.UpdatedBy = operatorID
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// 3. Per cart line: decrement the recipe, then insert the line
		for _, item := range req.Items {
			itemWarnings, err := s.applyRecipe(tx, item)
			if err != nil {
				// Inventory problems must never abort the sale. Swallow,
				// warn, and keep going with the next line.
				warnings = append(warnings, InventoryWarning{
					Product: item.ProductName,
					Message: "inventory tracking unavailable for this product",
				})
			} else {
				warnings = append(warnings, itemWarnings...)
			}

			line := model.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
			}
			// Idempotent line insert: a retried request hitting the same
			// order cannot duplicate a line.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&line).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			// The order was already persisted by an earlier attempt or a
			// concurrent retry. Report success instead of double-charging.
			// The original order id is not recovered on this path.
			return &CheckoutResult{
				OrderNumber:      orderNumber,
				TotalAmount:      req.TotalAmount,
				Warnings:         []InventoryWarning{},
				AlreadyProcessed: true,
			}, nil
		}
		return nil, err
	}

	// 4. Notify dashboards after commit
	go s.broadcastOrderPlaced(&order, warnings)

	return &CheckoutResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Warnings:    warnings,
	}, nil
}

// applyRecipe folds one cart line over its recipe, producing the applied
// decrements plus any shortfall warnings. It never clamps: the decrement
// lands even when the balance goes negative.
func (s *checkoutService) applyRecipe(tx *gorm.DB, item CheckoutItem) ([]InventoryWarning, error) {
	recipe, err := s.inventoryRepo.RecipeForProduct(tx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return nil, fmt.Errorf("no recipe configured for product %s", item.ProductID)
	}

	var warnings []InventoryWarning
	qty := decimal.NewFromInt(int64(item.Quantity))

	for _, ingredient := range recipe {
		if ingredient.InventoryItem == nil {
			return warnings, fmt.Errorf("inventory item %s missing for product %s", ingredient.InventoryItemID, item.ProductID)
		}

		decrement := ingredient.QuantityNeeded.Mul(qty)
		wouldBe := ingredient.InventoryItem.Quantity.Sub(decrement)
		if wouldBe.IsNegative() {
			warnings = append(warnings, InventoryWarning{
				Product:    item.ProductName,
				Ingredient: ingredient.InventoryItem.ItemName,
				Message: fmt.Sprintf("not enough %s: need %s %s, short by %s",
					ingredient.InventoryItem.ItemName,
					decrement.String(),
					ingredient.InventoryItem.Unit,
					wouldBe.Neg().String()),
			})
		}

		if err := s.inventoryRepo.ApplyDecrement(tx, ingredient.InventoryItemID, decrement); err != nil {
			return warnings, err
		}
	}

	return warnings, nil
}

func (s *checkoutService) GetOrderHistory(limit int) ([]model.OrderSummary, error) {
	return s.orderRepo.FindAllSummaries(limit)
}

func (s *checkoutService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *checkoutService) broadcastOrderPlaced(order *model.Order, warnings []InventoryWarning) {
	if s.wsHub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   "order_event",
		"action": "order_placed",
		"order": map[string]interface{}{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
			"cashier_name": order.CashierName,
		},
		"message": fmt.Sprintf("%s rang up order %s for $%s", order.CashierName, order.OrderNumber, order.TotalAmount.StringFixed(2)),
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg

	if len(warnings) > 0 {
		lowStock := map[string]interface{}{
			"type":     "order_event",
			"action":   "low_stock",
			"warnings": warnings,
			"message":  fmt.Sprintf("order %s left %d ingredient(s) short", order.OrderNumber, len(warnings)),
		}
		msg, _ := json.Marshal(lowStock)
		s.wsHub.Broadcast <- msg
	}
}

// newOrderNumber generates a receipt number when the client did not
// supply one. Format: ORD-YYYYMMDD-XXXXXXXX.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

// isDuplicateKey classifies a unique violation. Checked both through the
// dialect translation and the raw Postgres error code (23505).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
