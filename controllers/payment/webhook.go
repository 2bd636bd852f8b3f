package paymentController

import (
	"log"

	"coursepay/gateway"
	"coursepay/middleware"
	"coursepay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HandleWebhook authenticates and dispatches one asynchronous processor
// notification. Once the request is authenticated, the response is always
// 200 {received:true}: the processor retries on non-2xx, and a local
// enrollment failure is recovered by the next duplicate delivery or the
// reconciliation sweeper, not by forcing the processor's retry loop.
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()

	if h.cfg.PaymentWebhookSecret != "" {
		sig := c.Get(gateway.SignatureHeader)
		if err := gateway.VerifySignature(payload, sig, h.cfg.PaymentWebhookSecret, gateway.DefaultSignatureTolerance); err != nil {
			log.Printf("[WEBHOOK] rejected: %v", err)
			return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid signature!")
		}
	} else {
		// Startup refuses this mode in production; warn on every request in dev.
		log.Println("[WEBHOOK] Warning: processing UNVERIFIED webhook, no webhook secret configured")
	}

	event, err := gateway.ParseEvent(payload)
	if err != nil {
		log.Printf("[WEBHOOK] %v", err)
		return middleware.JsonError(c, fiber.StatusBadRequest, "Malformed event payload!")
	}

	if event.Type != gateway.EventCheckoutCompleted {
		log.Printf("[WEBHOOK] ignoring event type %q", event.Type)
		return acknowledge(c)
	}
	if event.ID == "" {
		// No processor id means no dedup key; still record the delivery.
		event.ID = "local_" + uuid.NewString()
	}

	session := event.Session()
	meta := session.Metadata

	record := &models.WebhookEvent{
		EventID:   event.ID,
		EventType: event.Type,
		SessionID: session.ID,
		UserID:    meta.UserID,
		CourseID:  meta.CourseID,
		Payload:   datatypes.JSON(payload),
	}
	freshDelivery, err := h.events.Record(c.Context(), record)
	if err != nil {
		log.Printf("[WEBHOOK] failed to record event %s: %v", event.ID, err)
	}
	if err == nil && !freshDelivery {
		if existing, getErr := h.events.Get(c.Context(), event.ID); getErr == nil && existing != nil && existing.ProcessedAt != nil {
			log.Printf("[WEBHOOK] event %s already processed, acknowledging duplicate", event.ID)
			return acknowledge(c)
		}
	}

	if meta.UserID == "" || meta.CourseID == "" {
		// Cannot tell who to enroll; nothing a retry could fix.
		log.Printf("[WEBHOOK] event %s for session %s has no enrollment metadata, skipping", event.ID, session.ID)
		_ = h.events.MarkFailed(c.Context(), event.ID, "missing enrollment metadata")
		return acknowledge(c)
	}

	created, err := h.enrollments.EnsureEnrolled(c.Context(), meta.UserID, meta.CourseID)
	if err != nil {
		log.Printf("[WEBHOOK] enrollment (%s, %s) failed, leaving for redelivery: %v", meta.UserID, meta.CourseID, err)
		_ = h.events.MarkFailed(c.Context(), event.ID, err.Error())
		return acknowledge(c)
	}

	_ = h.events.MarkProcessed(c.Context(), event.ID)
	if created {
		h.notifyEnrollment(c.Context(), session.CustomerEmail, meta.CourseID)
	}
	return acknowledge(c)
}

func acknowledge(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}
