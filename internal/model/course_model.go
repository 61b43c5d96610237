package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	Id               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title            string          `gorm:"type:text;uniqueIndex;not null"`
	CourseLink       string          `gorm:"type:text"`
	Instructor       string          `gorm:"type:text"`
	Lessons          datatypes.JSON  `gorm:"type:jsonb"`
	CatalogEmbedding pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}
