package service

import (
	"context"
	"encoding/json"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const StackProcessedTopic = "stack.processed"

type IPublisherService interface {
	PublishStackProcessed(ctx context.Context, stack *entity.Stack) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
	}
}

func (ps *publisherService) PublishStackProcessed(ctx context.Context, stack *entity.Stack) error {
	payload := dto.StackProcessedMessage{
		StackId: stack.Id,
		Status:  stack.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return ps.pubSub.Publish(StackProcessedTopic, msg)
}
