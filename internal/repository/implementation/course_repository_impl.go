package implementation

import (
	"context"
	"errors"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/mapper"
	"ai-coursechat-be/internal/model"
	"ai-coursechat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewCourseRepository(db *gorm.DB) contract.CourseRepository {
	return &CourseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *CourseRepositoryImpl) Upsert(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, id).Error
}

func (r *CourseRepositoryImpl) FindByTitle(ctx context.Context, title string) (*entity.Course, error) {
	var m model.Course
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = ?", entity.NormalizeTitle(title)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Course, error) {
	var models []*model.Course
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CourseRepositoryImpl) Titles(ctx context.Context) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Order("title ASC").
		Pluck("title", &titles).Error
	return titles, err
}

func (r *CourseRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepositoryImpl) NearestByEmbedding(ctx context.Context, embedding []float32) (*contract.ScoredCourse, error) {
	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (catalog_embedding <=> query_vector) recovers the similarity.
	type result struct {
		model.Course
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("courses").
		Select("courses.*, 1 - (catalog_embedding <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Order("similarity DESC").
		Limit(1).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	return &contract.ScoredCourse{
		Course:     r.mapper.ToEntity(&results[0].Course),
		Similarity: results[0].Similarity,
	}, nil
}
