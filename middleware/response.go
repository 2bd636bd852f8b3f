package middleware

import "github.com/gofiber/fiber/v2"

// JsonOK writes a success envelope. Extra fields ride alongside "ok":true.
func JsonOK(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonError writes the stable error envelope with the given HTTP status.
func JsonError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"ok":    false,
		"error": message,
	})
}

// ValidationErrorResponse reports field-level validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":     false,
		"error":  "Validation failed!",
		"fields": errors,
	})
}
