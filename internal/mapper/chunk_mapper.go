package mapper

import (
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(e *model.CourseChunk) *entity.CourseChunk {
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

	return &entity.CourseChunk{
		Id:             e.Id,
		Document:       e.Document,
		CourseTitle:    e.CourseTitle,
		LessonNumber:   e.LessonNumber,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *ChunkMapper) ToModel(e *entity.CourseChunk) *model.CourseChunk {
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

	return &model.CourseChunk{
		Id:             e.Id,
		Document:       e.Document,
		CourseTitle:    e.CourseTitle,
		LessonNumber:   e.LessonNumber,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.CourseChunk) []*entity.CourseChunk {
	entities := make([]*entity.CourseChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.CourseChunk) []*model.CourseChunk {
	models := make([]*model.CourseChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
