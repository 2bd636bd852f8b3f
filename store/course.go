package store

import (
	"context"
	"errors"
	"fmt"

	"coursepay/models"

	"gorm.io/gorm"
)

// CourseStore is the read-only pricing source. Course writes belong to the
// rest of the platform.
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

// GetCourse looks up a course by its platform id.
func (s *CourseStore) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get course %s: %v", ErrStore, courseID, err)
	}
	return &course, nil
}
