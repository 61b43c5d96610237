package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CourseChunk is one overlapping segment of lesson text stored with its
// embedding. Document carries a contextual header naming the course and
// lesson so the embedding keeps provenance even when the chunk text alone is
// ambiguous.
type CourseChunk struct {
	Id             uuid.UUID
	Document       string
	CourseTitle    string
	LessonNumber   int
	ChunkIndex     int
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// ChunkId derives the stable chunk key from (course title, lesson number,
// chunk index). Identical source text always maps to the identical id set,
// which is what makes re-ingestion idempotent.
func ChunkId(courseTitle string, lessonNumber, chunkIndex int) uuid.UUID {
	name := fmt.Sprintf("chunk|%s|%d|%d", NormalizeTitle(courseTitle), lessonNumber, chunkIndex)
	return uuid.NewSHA1(courseChatNamespace, []byte(name))
}
