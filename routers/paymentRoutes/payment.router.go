package paymentRoutes

import (
	paymentController "coursepay/controllers/payment"
	"coursepay/middleware"
	paymentValidator "coursepay/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes wires the payment intake and fulfillment surface.
func SetupPaymentRoutes(app *fiber.App, h *paymentController.Handler) {
	// Checkout creation requires an authenticated caller.
	app.Post("/checkout", middleware.RequireUser, paymentValidator.CreateCheckout(), h.CreateCheckout)

	// Sync verification is keyed by the session id recovered from the redirect.
	app.Get("/verify", h.VerifySession)

	// The processor authenticates via the signature header, not a user identity.
	app.Post("/webhook", h.HandleWebhook)

	// Read-only enrollment surface for the rest of the platform.
	app.Get("/enrollments", middleware.RequireUser, h.ListEnrollments)
}
