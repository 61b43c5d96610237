// Package catalog resolves user-supplied, possibly misspelled course names
// against the catalog index.
package catalog

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/pkg/embedding"
)

type Resolver struct {
	courses   contract.CourseRepository
	provider  embedding.EmbeddingProvider
	threshold float64
}

// NewResolver builds a resolver with the given confidence floor; matches
// below it are rejected rather than falling back to an arbitrary course.
func NewResolver(courses contract.CourseRepository, provider embedding.EmbeddingProvider, threshold float64) *Resolver {
	return &Resolver{
		courses:   courses,
		provider:  provider,
		threshold: threshold,
	}
}

// ResolveCourse turns a name hint into the canonical course title. ok=false
// means no confident match; err is reserved for infrastructure failures.
func (r *Resolver) ResolveCourse(ctx context.Context, hint string) (string, bool, error) {
	if hint == "" {
		return "", false, nil
	}

	// An exact (case-insensitive) title match needs no embedding call.
	course, err := r.courses.FindByTitle(ctx, entity.NormalizeTitle(hint))
	if err != nil {
		return "", false, err
	}
	if course != nil {
		return course.Title, true, nil
	}

	res, err := r.provider.Generate(hint, embedding.TaskRetrievalQuery)
	if err != nil {
		return "", false, err
	}

	best, err := r.courses.NearestByEmbedding(ctx, res.Embedding.Values)
	if err != nil {
		return "", false, err
	}
	if best == nil || best.Similarity < r.threshold {
		return "", false, nil
	}
	return best.Course.Title, true, nil
}
