package store

import (
	"context"
	"fmt"
	"time"

	"coursepay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentStore is the single point of truth for "has this user/course pair
// been fulfilled". Writes go through EnsureEnrolled only.
type EnrollmentStore struct {
	db *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

// EnsureEnrolled records that userID is enrolled in courseID. The insert rides
// on the unique (user_id, course_id) index: a conflicting row means the pair
// is already fulfilled, which is the outcome the caller wanted, so it reports
// created=false rather than an error. There is no read-before-write, so
// concurrent callers for the same pair cannot both create a row.
func (s *EnrollmentStore) EnsureEnrolled(ctx context.Context, userID, courseID string) (created bool, err error) {
	enrollment := models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&enrollment)
	if result.Error != nil {
		return false, fmt.Errorf("%w: ensure enrolled (%s, %s): %v", ErrStore, userID, courseID, result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListEnrollments returns a user's enrollments, newest first. Read-only
// surface shared with the rest of the platform for access checks.
func (s *EnrollmentStore) ListEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list enrollments for %s: %v", ErrStore, userID, err)
	}
	return enrollments, nil
}

// CountEnrollments reports how many enrollment rows exist for a pair. Used by
// tests and reconciliation tooling; normal call paths rely on EnsureEnrolled.
func (s *EnrollmentStore) CountEnrollments(ctx context.Context, userID, courseID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count enrollments: %v", ErrStore, err)
	}
	return count, nil
}
