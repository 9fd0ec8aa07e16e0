package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-boba-pos/internal/handler"
	"go-boba-pos/internal/middleware"
	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/internal/service"
	"go-boba-pos/internal/ws"
	"go-boba-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool for production changes)
	db.AutoMigrate(
		&model.Product{}, &model.InventoryItem{}, &model.ProductIngredient{},
		&model.Order{}, &model.OrderItem{},
		&model.Employee{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and manager account
	seedPrivilegesRolesAndManager(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	checkoutService := service.NewCheckoutService(orderRepo, inventoryRepo, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, inventoryRepo, wsHub)
	inventoryService := service.NewInventoryService(inventoryRepo)
	reportService := service.NewReportService(db)
	dashService := service.NewDashboardService(orderRepo)
	authService := service.NewAuthService(employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo, privilegeRepo, roleRepo, wsHub)

	storeName := os.Getenv("STORE_NAME")
	if storeName == "" {
		storeName = "Boba POS"
	}

	orderHandler := handler.NewOrderHandler(checkoutService)
	productHandler := handler.NewProductHandler(catalogService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService, storeName)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Boba POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(employeeRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(employeeRepo))

	// Orders
	orders := protected.Group("/orders")
	orders.Post("/checkout", middleware.RequirePrivilege("order:create"), orderHandler.Checkout)
	orders.Get("/history", middleware.RequirePrivilege("order:view"), orderHandler.History)
	orders.Get("/:orderId", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)

	// Catalog
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)
	protected.Get("/products/:id/ingredients", middleware.RequireAnyPrivilege("product:view", "inventory:view"), productHandler.GetRecipe)
	protected.Put("/products/:id/ingredients", middleware.RequirePrivilege("product:update"), productHandler.ReplaceRecipe)

	// Shift reports (path kept under /products for client compatibility)
	protected.Get("/products/reports/x-report-pdf", middleware.RequirePrivilege("report:x"), reportHandler.XReport)
	protected.Post("/products/reports/z-report-pdf", middleware.RequirePrivilege("report:z"), reportHandler.ZReport)

	// Inventory
	protected.Get("/inventory", middleware.RequirePrivilege("inventory:view"), inventoryHandler.GetItems)
	protected.Get("/inventory/:id", middleware.RequirePrivilege("inventory:view"), inventoryHandler.GetItem)
	protected.Post("/inventory", middleware.RequirePrivilege("inventory:create"), inventoryHandler.CreateItem)
	protected.Put("/inventory/:id", middleware.RequirePrivilege("inventory:update"), inventoryHandler.UpdateItem)
	protected.Post("/inventory/:id/restock", middleware.RequirePrivilege("inventory:restock"), inventoryHandler.Restock)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)
	protected.Get("/dashboard/top-items", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetTopItems)

	// Employee roster
	protected.Get("/employees", middleware.RequirePrivilege("employee:view"), employeeHandler.GetEmployees)
	protected.Get("/employees/:id", middleware.RequirePrivilege("employee:view"), employeeHandler.GetEmployee)
	protected.Post("/employees", middleware.RequirePrivilege("employee:create"), employeeHandler.CreateEmployee)
	protected.Put("/employees/:id", middleware.RequirePrivilege("employee:update"), employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", middleware.RequirePrivilege("employee:delete"), employeeHandler.DeleteEmployee)
	protected.Put("/employees/:id/privileges", middleware.RequirePrivilege("employee:update_privilege"), employeeHandler.UpdateEmployeePrivileges)

	// Roles
	protected.Get("/roles", roleHandler.GetRoles)

	// WebSocket Route (dashboard live updates)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- &ws.Client{Conn: c, EmployeeID: c.Query("employee_id")}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndManager creates default privileges, roles, and a
// manager account if they don't exist yet.
func seedPrivilegesRolesAndManager(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MANAGER gets ALL privileges
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		db.Model(&managerRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MANAGER role assigned all privileges")
	}

	// CASHIER gets the register subset
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, err := privilegeRepo.FindByCodes(model.CashierPrivilegeCodes)
		if err == nil {
			db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
			log.Println("CASHIER role assigned register privileges")
		}
	}

	// 4. Create default manager account
	managerEmail := os.Getenv("MANAGER_EMAIL")
	if managerEmail == "" {
		managerEmail = "manager@example.com"
	}
	_, err = employeeRepo.FindByEmail(managerEmail)
	if err != nil {
		managerRole, _ := roleRepo.FindByCode(model.RoleManager)

		manager := &model.Employee{
			Email:      managerEmail,
			FullName:   "Store Manager",
			RoleID:     &managerRole.ID,
			IsActive:   true,
			Privileges: managerRole.Privileges,
		}
		manager.CreatedBy = "system"
		manager.UpdatedBy = "system"

		password := os.Getenv("MANAGER_PASSWORD")
		if password == "" {
			password = "manager123"
		}
		if err := manager.SetPassword(password); err != nil {
			log.Printf("Warning: Failed to hash manager password: %v", err)
			return
		}

		if err := employeeRepo.Create(manager); err != nil {
			log.Printf("Warning: Failed to create manager account: %v", err)
		} else {
			log.Printf("Manager account created: %s (MANAGER)", managerEmail)
		}
	}
}
