package paymentController

import (
	"context"
	"log"

	"coursepay/config"
	"coursepay/gateway"
	"coursepay/models"
)

// Currency every course is priced in.
const Currency = "inr"

// PricingSource resolves a course for checkout pricing.
type PricingSource interface {
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
}

// EnrollmentWriter is the idempotent fulfillment boundary both the webhook and
// the sync-verify path converge on.
type EnrollmentWriter interface {
	EnsureEnrolled(ctx context.Context, userID, courseID string) (created bool, err error)
	ListEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error)
}

// ProcessorClient talks to the external payment processor.
type ProcessorClient interface {
	CreateCheckoutSession(ctx context.Context, params gateway.CreateSessionParams) (*gateway.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error)
}

// EventRecorder keeps the webhook dedup/reconciliation ledger.
type EventRecorder interface {
	Record(ctx context.Context, event *models.WebhookEvent) (created bool, err error)
	Get(ctx context.Context, eventID string) (*models.WebhookEvent, error)
	MarkProcessed(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID, reason string) error
}

// Notifier sends best-effort fulfillment notifications.
type Notifier interface {
	SendEnrollmentConfirmation(toEmail, courseTitle string)
}

// Handler carries the payment subsystem's collaborators. Every dependency is
// injected at construction so tests can swap in fakes.
type Handler struct {
	cfg         *config.Config
	courses     PricingSource
	enrollments EnrollmentWriter
	processor   ProcessorClient
	events      EventRecorder
	notifier    Notifier
}

func NewHandler(cfg *config.Config, courses PricingSource, enrollments EnrollmentWriter, processor ProcessorClient, events EventRecorder, notifier Notifier) *Handler {
	return &Handler{
		cfg:         cfg,
		courses:     courses,
		enrollments: enrollments,
		processor:   processor,
		events:      events,
		notifier:    notifier,
	}
}

// notifyEnrollment sends a confirmation email when an address is known.
// Failures never affect the fulfillment outcome.
func (h *Handler) notifyEnrollment(ctx context.Context, toEmail, courseID string) {
	if h.notifier == nil || toEmail == "" {
		return
	}
	title := courseID
	if course, err := h.courses.GetCourse(ctx, courseID); err == nil {
		title = course.Title
	} else {
		log.Printf("[PAYMENT] course %s lookup for confirmation email failed: %v", courseID, err)
	}
	h.notifier.SendEnrollmentConfirmation(toEmail, title)
}
