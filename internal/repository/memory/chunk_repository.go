package memory

import (
	"context"
	"sort"
	"sync"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository struct {
	mu     sync.RWMutex
	chunks map[uuid.UUID]*entity.CourseChunk
}

func NewChunkRepository() *ChunkRepository {
	return &ChunkRepository{
		chunks: make(map[uuid.UUID]*entity.CourseChunk),
	}
}

var _ contract.ChunkRepository = &ChunkRepository{}

func (r *ChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		copied := *c
		r.chunks[c.Id] = &copied
	}
	return nil
}

func (r *ChunkRepository) DeleteByCourseTitle(ctx context.Context, courseTitle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	normalized := entity.NormalizeTitle(courseTitle)
	for id, c := range r.chunks {
		if entity.NormalizeTitle(c.CourseTitle) == normalized {
			delete(r.chunks, id)
		}
	}
	return nil
}

// matchesSpecs mirrors the SQL each known specification would emit. The
// ordering spec is handled by FindAll's sort, which already keys on
// chunk_index last.
func matchesSpecs(c *entity.CourseChunk, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByCourseTitle:
			if entity.NormalizeTitle(c.CourseTitle) != entity.NormalizeTitle(sp.CourseTitle) {
				return false
			}
		case specification.ByLessonNumber:
			if c.LessonNumber != sp.LessonNumber {
				return false
			}
		}
	}
	return true
}

func (r *ChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.CourseChunk, 0, len(r.chunks))
	for _, c := range r.chunks {
		if !matchesSpecs(c, specs) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseTitle != out[j].CourseTitle {
			return out[i].CourseTitle < out[j].CourseTitle
		}
		if out[i].LessonNumber != out[j].LessonNumber {
			return out[i].LessonNumber < out[j].LessonNumber
		}
		return out[i].ChunkIndex < out[j].ChunkIndex
	})
	return out, nil
}

func (r *ChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, c := range r.chunks {
		if matchesSpecs(c, specs) {
			n++
		}
	}
	return n, nil
}

func (r *ChunkRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filter contract.ChunkFilter, threshold float64) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	normalizedCourse := entity.NormalizeTitle(filter.CourseTitle)
	var scored []*contract.ScoredChunk
	for _, c := range r.chunks {
		if filter.CourseTitle != "" && entity.NormalizeTitle(c.CourseTitle) != normalizedCourse {
			continue
		}
		if filter.LessonNumber != nil && c.LessonNumber != *filter.LessonNumber {
			continue
		}
		sim := cosineSimilarity(embedding, c.EmbeddingValue)
		if sim < threshold {
			continue
		}
		copied := *c
		scored = append(scored, &contract.ScoredChunk{Chunk: &copied, Similarity: sim})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.ChunkIndex < scored[j].Chunk.ChunkIndex
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
