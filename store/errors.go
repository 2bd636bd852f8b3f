package store

import "errors"

var (
	// ErrCourseNotFound marks a pricing lookup for an unknown or inactive course.
	ErrCourseNotFound = errors.New("course not found")
	// ErrStore marks a failed read or write against the backing database.
	ErrStore = errors.New("store operation failed")
)
