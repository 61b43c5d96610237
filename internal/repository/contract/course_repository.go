package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredCourse wraps a catalog entry with its similarity to a name hint
type ScoredCourse struct {
	Course     *entity.Course
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

// CourseRepository is the catalog index: one entry per course, holding
// searchable metadata used for fuzzy name resolution, never chunk text.
type CourseRepository interface {
	// Upsert writes the course keyed by its deterministic id; re-ingesting
	// the same document replaces the row instead of appending.
	Upsert(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByTitle(ctx context.Context, title string) (*entity.Course, error)
	FindAll(ctx context.Context) ([]*entity.Course, error)
	Titles(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	// NearestByEmbedding returns the single closest catalog entry by cosine
	// similarity, or nil when the catalog is empty. Deciding whether the
	// match is confident enough is the resolver's job, not the store's.
	NearestByEmbedding(ctx context.Context, embedding []float32) (*ScoredCourse, error)
}
