package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/coursedoc"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/events"
	pktNats "ai-coursechat-be/pkg/nats"
	"ai-coursechat-be/pkg/utils"
)

type IIngestService interface {
	IngestDocument(ctx context.Context, raw string) (*dto.IngestResult, error)
	IngestFolder(ctx context.Context, dir string, clearExisting bool) (*dto.IngestResult, error)
	BuildCourse(doc *coursedoc.Document) (*entity.Course, error)
	BuildChunks(doc *coursedoc.Document) ([]*entity.CourseChunk, []string, error)
}

type ingestService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	sysLogger         logger.ILogger
	chunkSize         int
	chunkOverlap      int
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	chunkSize int,
	chunkOverlap int,
) IIngestService {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if chunkOverlap < 0 {
		chunkOverlap = 100
	}
	return &ingestService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		sysLogger:         sysLogger,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
	}
}

// IngestDocument parses one raw course document, upserts its catalog entry
// and atomically replaces its chunks. A document contributing zero chunks is
// reported as a warning, never an error; errors are reserved for
// infrastructure failures.
func (s *ingestService) IngestDocument(ctx context.Context, raw string) (*dto.IngestResult, error) {
	result := &dto.IngestResult{}

	doc, parseWarnings := coursedoc.Parse(raw)
	for _, w := range parseWarnings {
		result.Warnings = append(result.Warnings, w.String())
	}
	if doc == nil {
		return result, nil
	}

	course, err := s.BuildCourse(doc)
	if err != nil {
		return nil, err
	}

	chunks, chunkWarnings, err := s.BuildChunks(doc)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, chunkWarnings...)

	if err := s.replaceCourse(ctx, course, chunks); err != nil {
		return nil, err
	}

	result.CoursesAdded = 1
	result.ChunksAdded = len(chunks)

	s.sysLogger.Info("ingest", "course ingested", map[string]interface{}{
		"title":  course.Title,
		"chunks": len(chunks),
	})
	s.publishIngested(ctx, course, len(chunks))

	return result, nil
}

// IngestFolder batches every .txt/.md document in dir. Per-document
// problems degrade to warnings; the batch continues.
func (s *ingestService) IngestFolder(ctx context.Context, dir string, clearExisting bool) (*dto.IngestResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read course folder: %w", err)
	}

	existing := make(map[string]bool)
	if !clearExisting {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		titles, err := uow.CourseRepository().Titles(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range titles {
			existing[entity.NormalizeTitle(t)] = true
		}
	}

	result := &dto.IngestResult{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}

		doc, _ := coursedoc.Parse(string(raw))
		if doc != nil && existing[entity.NormalizeTitle(doc.Title)] {
			continue // already ingested, skip unless clearing
		}

		docResult, err := s.IngestDocument(ctx, string(raw))
		if err != nil {
			// Infrastructure failure for one file is still surfaced per
			// file so the rest of the batch proceeds.
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		result.CoursesAdded += docResult.CoursesAdded
		result.ChunksAdded += docResult.ChunksAdded
		for _, w := range docResult.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", e.Name(), w))
		}
	}

	return result, nil
}

// BuildChunks splits every lesson into overlapping, context-annotated
// segments and embeds them. Exposed on the interface because the async
// consumer performs the same assembly from a published document.
func (s *ingestService) BuildChunks(doc *coursedoc.Document) ([]*entity.CourseChunk, []string, error) {
	var chunks []*entity.CourseChunk
	var warnings []string

	for _, lesson := range doc.Lessons {
		pieces := utils.SplitSentences(lesson.Content, s.chunkSize, s.chunkOverlap)
		if len(pieces) == 0 {
			warnings = append(warnings, fmt.Sprintf("lesson %d of course '%s' produced no chunks", lesson.Number, doc.Title))
			continue
		}

		for i, piece := range pieces {
			// Context header keeps provenance in the embedding even when
			// the chunk text alone is ambiguous.
			document := fmt.Sprintf("Course %s Lesson %d content: %s", doc.Title, lesson.Number, piece)

			res, err := s.embeddingProvider.Generate(document, embedding.TaskRetrievalDocument)
			if err != nil {
				return nil, nil, err
			}

			chunks = append(chunks, &entity.CourseChunk{
				Id:             entity.ChunkId(doc.Title, lesson.Number, i),
				Document:       document,
				CourseTitle:    doc.Title,
				LessonNumber:   lesson.Number,
				ChunkIndex:     i,
				EmbeddingValue: res.Embedding.Values,
				CreatedAt:      time.Now(),
			})
		}
	}

	if len(chunks) == 0 {
		warnings = append(warnings, fmt.Sprintf("course '%s' contributed zero chunks", doc.Title))
	}
	return chunks, warnings, nil
}

// BuildCourse assembles the catalog entry for a parsed document, embedding
// the title, instructor and lesson titles as one descriptive text.
func (s *ingestService) BuildCourse(doc *coursedoc.Document) (*entity.Course, error) {
	lessons := make([]entity.Lesson, len(doc.Lessons))
	catalogParts := []string{doc.Title}
	if doc.Instructor != "" {
		catalogParts = append(catalogParts, "taught by "+doc.Instructor)
	}
	for i, l := range doc.Lessons {
		lessons[i] = entity.Lesson{Number: l.Number, Title: l.Title, Link: l.Link}
		if l.Title != "" {
			catalogParts = append(catalogParts, fmt.Sprintf("Lesson %d: %s", l.Number, l.Title))
		}
	}

	res, err := s.embeddingProvider.Generate(strings.Join(catalogParts, ". "), embedding.TaskRetrievalDocument)
	if err != nil {
		return nil, err
	}

	return &entity.Course{
		Id:               entity.CourseId(doc.Title),
		Title:            doc.Title,
		CourseLink:       doc.Link,
		Instructor:       doc.Instructor,
		Lessons:          lessons,
		CatalogEmbedding: res.Embedding.Values,
		CreatedAt:        time.Now(),
	}, nil
}

// replaceCourse applies the copy-on-replace write: upsert the catalog row,
// drop the course's old chunks and bulk-insert the new set inside one
// transaction, so concurrent queries never observe a partially written
// course.
func (s *ingestService) replaceCourse(ctx context.Context, course *entity.Course, chunks []*entity.CourseChunk) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CourseRepository().Upsert(ctx, course); err != nil {
		return err
	}
	if err := uow.ChunkRepository().DeleteByCourseTitle(ctx, course.Title); err != nil {
		return err
	}
	if len(chunks) > 0 {
		if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *ingestService) publishIngested(ctx context.Context, course *entity.Course, chunkCount int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "COURSE_INGESTED",
		Data: map[string]interface{}{
			"course_id": course.Id,
			"title":     course.Title,
			"chunks":    chunkCount,
		},
		OccurredAt: time.Now(),
	}
	// Event delivery is auxiliary; never fail the ingestion over it.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("ingest", "failed to publish COURSE_INGESTED event", map[string]interface{}{
			"title": course.Title,
			"error": err.Error(),
		})
	}
}
