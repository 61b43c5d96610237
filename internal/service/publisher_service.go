package service

import (
	"encoding/json"
	"fmt"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/pkg/coursedoc"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishCourseEmbedding(doc *coursedoc.Document) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishCourseEmbedding hands a parsed course document to the embedding
// consumer. The full document travels in the payload so the consumer never
// re-reads the original source.
func (p *publisherService) PublishCourseEmbedding(doc *coursedoc.Document) error {
	payload := dto.PublishCourseEmbeddingMessage{Document: doc}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal course embedding message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return p.pubSub.Publish(p.topicName, msg)
}
