package mapper

import (
	"encoding/json"
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(e *model.Course) *entity.Course {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var lessons []entity.Lesson
	if len(e.Lessons) > 0 {
		// Corrupt lesson JSON degrades to an empty list rather than failing
		// the read; the course row itself is still usable.
		_ = json.Unmarshal(e.Lessons, &lessons)
	}

	return &entity.Course{
		Id:               e.Id,
		Title:            e.Title,
		CourseLink:       e.CourseLink,
		Instructor:       e.Instructor,
		Lessons:          lessons,
		CatalogEmbedding: e.CatalogEmbedding.Slice(),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        e.DeletedAt.Valid,
	}
}

func (m *CourseMapper) ToModel(e *entity.Course) *model.Course {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	lessonsJson, _ := json.Marshal(e.Lessons)

	return &model.Course{
		Id:               e.Id,
		Title:            e.Title,
		CourseLink:       e.CourseLink,
		Instructor:       e.Instructor,
		Lessons:          datatypes.JSON(lessonsJson),
		CatalogEmbedding: pgvector.NewVector(e.CatalogEmbedding),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, e := range courses {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *CourseMapper) ToModels(courses []*entity.Course) []*model.Course {
	models := make([]*model.Course, len(courses))
	for i, e := range courses {
		models[i] = m.ToModel(e)
	}
	return models
}
