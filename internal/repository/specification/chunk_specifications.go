package specification

import "gorm.io/gorm"

// ByCourseTitle matches case-insensitively, like every other place a title
// acts as a key.
type ByCourseTitle struct {
	CourseTitle string
}

func (s ByCourseTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(course_title) = LOWER(?)", s.CourseTitle)
}

type ByLessonNumber struct {
	LessonNumber int
}

func (s ByLessonNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lesson_number = ?", s.LessonNumber)
}

type OrderByChunkIndex struct{}

func (s OrderByChunkIndex) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chunk_index ASC")
}
