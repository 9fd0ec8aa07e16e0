package model

// Role represents employee roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // MANAGER, CASHIER
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleManager,
		Name:        "Store Manager",
		Description: "Full access: catalog, inventory, roster, reports and dashboard",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "Register access: checkout, order lookup and catalog view",
	},
}
