package models

import "gorm.io/gorm"

// Course is the catalog record this service prices checkouts from. The rest of
// the platform owns writes; this subsystem only reads it.
type Course struct {
	gorm.Model
	CourseID     string  `json:"courseId" gorm:"type:varchar(100);uniqueIndex;not null"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Price        float64 `json:"price" gorm:"not null"`
	IsDeleted    bool    `gorm:"default:false" json:"-"`
}
