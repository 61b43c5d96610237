package service

import (
	"context"
	"encoding/json"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the async half of the ingestion pipeline: it receives
// parsed course documents from the in-process queue, chunks and embeds them,
// and replaces the course's index entries.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	ingestService IIngestService
	sysLogger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	ingestService IIngestService,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		ingestService: ingestService,
		sysLogger:     sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishCourseEmbeddingMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.sysLogger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, don't retry
		return
	}
	if payload.Document == nil || payload.Document.Title == "" {
		cs.sysLogger.Error("consumer", "message carries no document", nil)
		msg.Ack()
		return
	}

	doc := payload.Document
	cs.sysLogger.Info("consumer", "processing course embedding", map[string]interface{}{
		"title":   doc.Title,
		"lessons": len(doc.Lessons),
	})

	course, err := cs.ingestService.BuildCourse(doc)
	if err != nil {
		cs.sysLogger.Error("consumer", "failed to build catalog entry", map[string]interface{}{
			"title": doc.Title,
			"error": err.Error(),
		})
		msg.Nack() // embedding provider outages are retriable
		return
	}

	chunks, warnings, err := cs.ingestService.BuildChunks(doc)
	if err != nil {
		cs.sysLogger.Error("consumer", "failed to build chunks", map[string]interface{}{
			"title": doc.Title,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	for _, w := range warnings {
		cs.sysLogger.Warn("consumer", w, map[string]interface{}{"title": doc.Title})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.sysLogger.Error("consumer", "failed to begin transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CourseRepository().Upsert(ctx, course); err != nil {
		cs.sysLogger.Error("consumer", "failed to upsert course", map[string]interface{}{
			"title": doc.Title,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	if err := uow.ChunkRepository().DeleteByCourseTitle(ctx, doc.Title); err != nil {
		cs.sysLogger.Error("consumer", "failed to delete old chunks", map[string]interface{}{
			"title": doc.Title,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	if len(chunks) > 0 {
		if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
			cs.sysLogger.Error("consumer", "failed to create chunks", map[string]interface{}{
				"title": doc.Title,
				"error": err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.sysLogger.Error("consumer", "failed to commit transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.sysLogger.Info("consumer", "course embeddings replaced", map[string]interface{}{
		"title":  doc.Title,
		"chunks": len(chunks),
	})
	msg.Ack()
}
