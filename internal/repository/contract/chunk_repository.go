package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"

	"ai-coursechat-be/internal/repository/specification"
)

// ScoredChunk wraps CourseChunk with its similarity score
type ScoredChunk struct {
	Chunk      *entity.CourseChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

// ChunkFilter restricts a semantic search to one course and optionally one
// lesson. Nil LessonNumber means all lessons.
type ChunkFilter struct {
	CourseTitle  string
	LessonNumber *int
}

// ChunkRepository is the content index: one entry per chunk with text,
// embedding and course/lesson metadata for filtered semantic search.
type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error
	DeleteByCourseTitle(ctx context.Context, courseTitle string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns up to 'limit' chunks ordered by
	// descending cosine similarity, ties broken by ascending chunk index.
	// An empty result is a valid "nothing found" outcome, not an error.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filter ChunkFilter, threshold float64) ([]*ScoredChunk, error)
}
