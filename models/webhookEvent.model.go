package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WebhookEvent stores processor webhook payloads with deduplication metadata.
// The unique event id lets redeliveries short-circuit, and unprocessed rows are
// retried by the reconciliation sweeper.
type WebhookEvent struct {
	gorm.Model
	EventID         string         `gorm:"type:varchar(191);not null;uniqueIndex" json:"eventId"`
	EventType       string         `gorm:"type:varchar(100);not null;index" json:"eventType"`
	SessionID       string         `gorm:"type:varchar(191);index" json:"sessionId"`
	UserID          string         `gorm:"type:varchar(100)" json:"userId"`
	CourseID        string         `gorm:"type:varchar(100)" json:"courseId"`
	Payload         datatypes.JSON `json:"payload"`
	ProcessedAt     *time.Time     `json:"processedAt,omitempty"`
	ProcessingError string         `gorm:"type:text" json:"processingError"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
