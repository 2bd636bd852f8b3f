package utils

import (
	"context"
	"log"
	"strconv"
	"time"

	"coursepay/gateway"
	"coursepay/store"

	"github.com/robfig/cron/v3"
)

// logReconciler logs reconciliation events with timestamp
func logReconciler(message string) {
	log.Printf("[RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReconcileScheduler sweeps checkout-completed webhook events whose
// enrollment write failed on delivery and retries them. This backs up the
// processor's own redelivery: once a delivery has been acknowledged, redelivery
// stops, so a recorded-but-unfulfilled event would otherwise need manual
// reconciliation.
func StartReconcileScheduler(events *store.EventLog, enrollments *store.EnrollmentStore) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("*/5 * * * *", func() {
		reconcileUnprocessedEvents(events, enrollments)
	})
	if err != nil {
		log.Fatalf("Failed to register reconciliation job: %v", err)
	}

	c.Start()
	logReconciler("Webhook reconciliation scheduler started (every 5 minutes)")
	return c
}

func reconcileUnprocessedEvents(events *store.EventLog, enrollments *store.EnrollmentStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := events.Unprocessed(ctx, gateway.EventCheckoutCompleted, 100)
	if err != nil {
		logReconciler("Error fetching unprocessed events: " + err.Error())
		return
	}
	if len(pending) == 0 {
		return
	}
	logReconciler("Retrying " + strconv.Itoa(len(pending)) + " unprocessed webhook events")

	for _, event := range pending {
		if event.UserID == "" || event.CourseID == "" {
			// Recorded without metadata; a retry cannot fix this.
			continue
		}

		created, err := enrollments.EnsureEnrolled(ctx, event.UserID, event.CourseID)
		if err != nil {
			logReconciler("Enrollment (" + event.UserID + ", " + event.CourseID + ") still failing: " + err.Error())
			_ = events.MarkFailed(ctx, event.EventID, err.Error())
			continue
		}

		if err := events.MarkProcessed(ctx, event.EventID); err != nil {
			logReconciler("Failed to mark event " + event.EventID + " processed: " + err.Error())
			continue
		}
		if created {
			logReconciler("Recovered enrollment (" + event.UserID + ", " + event.CourseID + ") from event " + event.EventID)
		}
	}
}
