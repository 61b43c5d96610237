// Package memory holds in-process implementations of the repository
// contracts. They back the unit tests and let the service run without
// Postgres; similarity math mirrors the pgvector cosine queries.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"

	"github.com/google/uuid"
)

type CourseRepository struct {
	mu      sync.RWMutex
	courses map[uuid.UUID]*entity.Course
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		courses: make(map[uuid.UUID]*entity.Course),
	}
}

var _ contract.CourseRepository = &CourseRepository{}

func (r *CourseRepository) Upsert(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *course
	r.courses[course.Id] = &copied
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *CourseRepository) FindByTitle(ctx context.Context, title string) (*entity.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	normalized := entity.NormalizeTitle(title)
	for _, c := range r.courses {
		if entity.NormalizeTitle(c.Title) == normalized {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]*entity.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Course, 0, len(r.courses))
	for _, c := range r.courses {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *CourseRepository) Titles(ctx context.Context) ([]string, error) {
	courses, _ := r.FindAll(ctx)
	titles := make([]string, len(courses))
	for i, c := range courses {
		titles[i] = c.Title
	}
	return titles, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.courses)), nil
}

func (r *CourseRepository) NearestByEmbedding(ctx context.Context, embedding []float32) (*contract.ScoredCourse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *contract.ScoredCourse
	for _, c := range r.courses {
		sim := cosineSimilarity(embedding, c.CatalogEmbedding)
		if best == nil || sim > best.Similarity {
			copied := *c
			best = &contract.ScoredCourse{Course: &copied, Similarity: sim}
		}
	}
	return best, nil
}

// cosineSimilarity matches pgvector's 1 - (a <=> b) for non-zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
