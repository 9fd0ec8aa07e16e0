package middleware

import (
	"strings"

	"go-boba-pos/internal/repository"
	"go-boba-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT token and sets employee info in context
func RequireAuth(employeeRepo repository.EmployeeRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
		}

		// Strict session check against the DB
		employee, err := employeeRepo.FindByID(claims.EmployeeID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Employee not found"})
		}

		if employee.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Session expired (logged in on another device)"})
		}

		c.Locals("employee_id", claims.EmployeeID.String())
		c.Locals("employee_email", claims.Email)
		c.Locals("employee_name", claims.Name)
		c.Locals("employee_privileges", claims.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated employee has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("employee_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireAnyPrivilege checks if the employee has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("employee_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "No privileges found"})
		}

		for _, employeePriv := range privileges {
			for _, reqPriv := range requiredPrivileges {
				if employeePriv == reqPriv {
					return c.Next()
				}
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
		})
	}
}
