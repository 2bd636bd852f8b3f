package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursepay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventLog records inbound webhook events for deduplication and for the
// reconciliation sweeper. Rows are keyed by the processor's event id.
type EventLog struct {
	db *gorm.DB
}

func NewEventLog(db *gorm.DB) *EventLog {
	return &EventLog{db: db}
}

// Record inserts an event row, riding on the unique event_id index the same
// way EnsureEnrolled rides on the enrollment pair index. created=false means
// this delivery is a duplicate.
func (l *EventLog) Record(ctx context.Context, event *models.WebhookEvent) (created bool, err error) {
	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(event)
	if result.Error != nil {
		return false, fmt.Errorf("%w: record webhook event %s: %v", ErrStore, event.EventID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Get fetches an event row by processor event id. Returns nil when absent.
func (l *EventLog) Get(ctx context.Context, eventID string) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := l.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get webhook event %s: %v", ErrStore, eventID, err)
	}
	return &event, nil
}

// MarkProcessed stamps an event as fulfilled and clears any recorded error.
func (l *EventLog) MarkProcessed(ctx context.Context, eventID string) error {
	now := time.Now()
	err := l.db.WithContext(ctx).
		Model(&models.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{"processed_at": &now, "processing_error": ""}).Error
	if err != nil {
		return fmt.Errorf("%w: mark webhook event %s processed: %v", ErrStore, eventID, err)
	}
	return nil
}

// MarkFailed records why an event could not be fulfilled, leaving it eligible
// for the reconciliation sweeper.
func (l *EventLog) MarkFailed(ctx context.Context, eventID, reason string) error {
	err := l.db.WithContext(ctx).
		Model(&models.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Update("processing_error", reason).Error
	if err != nil {
		return fmt.Errorf("%w: mark webhook event %s failed: %v", ErrStore, eventID, err)
	}
	return nil
}

// Unprocessed returns checkout-completed events that never reached a processed
// state, oldest first.
func (l *EventLog) Unprocessed(ctx context.Context, eventType string, limit int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := l.db.WithContext(ctx).
		Where("event_type = ? AND processed_at IS NULL", eventType).
		Order("created_at asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list unprocessed webhook events: %v", ErrStore, err)
	}
	return events, nil
}
