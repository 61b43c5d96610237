package dto

import "ai-coursechat-be/pkg/coursedoc"

type IngestDocumentRequest struct {
	Document string `json:"document" validate:"required"`
}

type IngestResult struct {
	CoursesAdded int      `json:"courses_added"`
	ChunksAdded  int      `json:"chunks_added"`
	Warnings     []string `json:"warnings,omitempty"`
}

type IngestQueuedResponse struct {
	CourseTitle string   `json:"course_title"`
	Warnings    []string `json:"warnings,omitempty"`
}

// PublishCourseEmbeddingMessage is the watermill payload for the async
// ingestion path: the already-parsed document travels with the message so
// the consumer can chunk, embed and replace without re-reading any source.
type PublishCourseEmbeddingMessage struct {
	Document *coursedoc.Document `json:"document"`
}
