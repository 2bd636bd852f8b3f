package paymentController

import (
	"errors"
	"log"
	"math"

	"coursepay/gateway"
	"coursepay/middleware"
	"coursepay/store"
	paymentValidator "coursepay/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateCheckout builds a processor-hosted checkout session for one course and
// returns its URL. Nothing is written locally; fulfillment happens later via
// the webhook or the sync-verify path.
func (h *Handler) CreateCheckout(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return middleware.JsonError(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	reqData, ok := c.Locals("validatedCheckout").(*paymentValidator.CheckoutRequest)
	if !ok {
		return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	course, err := h.courses.GetCourse(c.Context(), reqData.CourseID)
	if errors.Is(err, store.ErrCourseNotFound) {
		return middleware.JsonError(c, fiber.StatusNotFound, "Course not found!")
	}
	if err != nil {
		log.Printf("[CHECKOUT] course %s lookup failed: %v", reqData.CourseID, err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to load course!")
	}

	successURL := reqData.SuccessURL
	if successURL == "" {
		successURL = h.cfg.CheckoutSuccessURL
	}
	cancelURL := reqData.CancelURL
	if cancelURL == "" {
		cancelURL = h.cfg.CheckoutCancelURL
	}

	params := gateway.CreateSessionParams{
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		ClientReferenceID: uuid.NewString(),
		Metadata: gateway.SessionMetadata{
			UserID:   userID,
			CourseID: course.CourseID,
		},
		LineItems: []gateway.LineItem{{
			Name:       course.Title,
			UnitAmount: int64(math.Round(course.Price)),
			Quantity:   1,
			Currency:   Currency,
		}},
	}

	session, err := h.processor.CreateCheckoutSession(c.Context(), params)
	if errors.Is(err, gateway.ErrUpstreamTimeout) {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Payment processor timed out, please retry!")
	}
	if err != nil {
		log.Printf("[CHECKOUT] session creation for (%s, %s) failed: %v", userID, course.CourseID, err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to create checkout session!")
	}

	return middleware.JsonOK(c, fiber.Map{"url": session.URL})
}
