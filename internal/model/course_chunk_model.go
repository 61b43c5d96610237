package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CourseChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Document       string          `gorm:"type:text"`
	CourseTitle    string          `gorm:"type:text;not null;index;index:idx_course_chunks_course_lesson"`
	LessonNumber   int             `gorm:"not null;index:idx_course_chunks_course_lesson"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based ordinal within the lesson
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (CourseChunk) TableName() string {
	return "course_chunks"
}
