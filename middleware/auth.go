package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDHeader carries the authenticated caller's id, injected by the platform
// gateway after it terminates auth. This service trusts it as-is.
const UserIDHeader = "x-user-id"

// RequireUser rejects requests without a caller identity and stores the user
// id in the request context for the handlers.
func RequireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserIDHeader))
	if userID == "" {
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	c.Locals("userId", userID)
	return c.Next()
}

// UserID returns the caller identity set by RequireUser, or "" when absent.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userId").(string)
	return userID
}
