package implementation

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/mapper"
	"ai-coursechat-be/internal/model"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.CourseChunk, len(chunks))
	for i, e := range chunks {
		models[i] = r.mapper.ToModel(e)
	}

	// Chunk ids are deterministic, so conflicting rows from a previous
	// ingestion of the same document are overwritten, not duplicated.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(models).Error
	if err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

// DeleteByCourseTitle matches titles case-insensitively, the same way course
// ids are derived, so re-ingesting a retitled-in-casing document replaces the
// old rows instead of leaving them behind.
func (r *ChunkRepositoryImpl) DeleteByCourseTitle(ctx context.Context, courseTitle string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("LOWER(course_title) = LOWER(?)", courseTitle).
		Delete(&model.CourseChunk{}).Error
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error) {
	var models []*model.CourseChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CourseChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns chunks with similarity scores, filtered by
// course/lesson when requested and by the similarity threshold.
func (r *ChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filter contract.ChunkFilter, threshold float64) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CourseChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("course_chunks").
		Select("course_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold)

	if filter.CourseTitle != "" {
		query = query.Where("LOWER(course_title) = LOWER(?)", filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		query = query.Where("lesson_number = ?", *filter.LessonNumber)
	}

	// chunk_index tiebreak keeps equal-scored results deterministic
	err := query.
		Order("similarity DESC, chunk_index ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.CourseChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
