package paymentController

import (
	"errors"
	"log"

	"coursepay/gateway"
	"coursepay/middleware"

	"github.com/gofiber/fiber/v2"
)

// VerifySession is the synchronous fallback for a client returning from
// checkout before the webhook has landed. It polls the processor for the
// session's status and converges on the same idempotent enrollment write.
func (h *Handler) VerifySession(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return middleware.JsonError(c, fiber.StatusBadRequest, "session_id is required!")
	}

	session, err := h.processor.GetCheckoutSession(c.Context(), sessionID)
	if errors.Is(err, gateway.ErrUpstreamTimeout) {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Payment processor timed out, please retry!")
	}
	if err != nil {
		log.Printf("[VERIFY] session %s lookup failed: %v", sessionID, err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch checkout session!")
	}

	if !session.Paid() {
		// Not a failure: the user may simply have abandoned checkout.
		return middleware.JsonOK(c, fiber.Map{"status": "pending"})
	}

	meta := session.Metadata
	if meta.UserID == "" || meta.CourseID == "" {
		log.Printf("[VERIFY] paid session %s has no enrollment metadata", sessionID)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Session is missing enrollment metadata!")
	}

	// The caller is actively waiting for a definitive answer, so unlike the
	// webhook path a store failure is propagated as retryable.
	created, err := h.enrollments.EnsureEnrolled(c.Context(), meta.UserID, meta.CourseID)
	if err != nil {
		log.Printf("[VERIFY] enrollment (%s, %s) failed: %v", meta.UserID, meta.CourseID, err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to record enrollment, please retry!")
	}
	if created {
		h.notifyEnrollment(c.Context(), session.CustomerEmail, meta.CourseID)
	}

	return middleware.JsonOK(c, fiber.Map{
		"status":   "enrolled",
		"courseId": meta.CourseID,
	})
}
