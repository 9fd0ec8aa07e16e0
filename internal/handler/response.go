package handler

import "github.com/gofiber/fiber/v2"

// Every JSON endpoint answers with the same envelope:
// { success: bool, data?, message?, error? }

func respondOK(c *fiber.Ctx, data interface{}, message string) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(body)
}

func respondCreated(c *fiber.Ctx, data interface{}, message string) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

func respondError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

func respondErrorMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
