package model

// Privilege represents a permission that can be assigned to employees
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Catalog management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Inventory management
	{Code: "inventory:view", Name: "View Inventory"},
	{Code: "inventory:create", Name: "Create Inventory Item"},
	{Code: "inventory:update", Name: "Update Inventory Item"},
	{Code: "inventory:restock", Name: "Restock Inventory"},
	// Orders
	{Code: "order:create", Name: "Checkout Order"},
	{Code: "order:view", Name: "View Orders"},
	// Reports (MANAGER only)
	{Code: "report:x", Name: "Run X-Report"},
	{Code: "report:z", Name: "Close Shift (Z-Report)"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
	// Employee roster (MANAGER only)
	{Code: "employee:view", Name: "View Employee"},
	{Code: "employee:create", Name: "Create Employee"},
	{Code: "employee:update", Name: "Update Employee"},
	{Code: "employee:delete", Name: "Delete Employee"},
	{Code: "employee:update_privilege", Name: "Update Employee Privileges"},
}

// CashierPrivilegeCodes are the privileges seeded onto the CASHIER role.
var CashierPrivilegeCodes = []string{
	"product:view",
	"inventory:view",
	"order:create",
	"order:view",
}
