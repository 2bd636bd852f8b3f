package paymentController

import (
	"log"

	"coursepay/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListEnrollments is the read-only surface the rest of the platform uses for
// access-control checks.
func (h *Handler) ListEnrollments(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return middleware.JsonError(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	enrollments, err := h.enrollments.ListEnrollments(c.Context(), userID)
	if err != nil {
		log.Printf("[ENROLLMENTS] list for %s failed: %v", userID, err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments!")
	}

	return middleware.JsonOK(c, fiber.Map{"enrollments": enrollments})
}
