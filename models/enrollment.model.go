package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment grants a user access to a course. The composite unique index on
// (user_id, course_id) is the idempotency key for fulfillment: duplicate
// webhook deliveries and the sync-verify path all converge on one row.
type Enrollment struct {
	gorm.Model
	UserID     string    `json:"userId" gorm:"type:varchar(100);not null;uniqueIndex:ux_enrollments_user_course,priority:1"`
	CourseID   string    `json:"courseId" gorm:"type:varchar(100);not null;uniqueIndex:ux_enrollments_user_course,priority:2"`
	EnrolledAt time.Time `json:"enrolledAt" gorm:"not null"`
}
