package service

import (
	"context"
	"encoding/json"

	"meal-planner-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IPublisherService queues in-process background work.
type IPublisherService interface {
	PublishShoppingListRefresh(ctx context.Context, planId uuid.UUID) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (s *publisherService) PublishShoppingListRefresh(ctx context.Context, planId uuid.UUID) error {
	payload, err := json.Marshal(dto.ShoppingListRefreshMessage{PlanId: planId})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.publisher.Publish(s.topicName, msg)
}

type nopPublisherService struct{}

func (nopPublisherService) PublishShoppingListRefresh(context.Context, uuid.UUID) error { return nil }

// NopPublisherService drops every message.
func NopPublisherService() IPublisherService {
	return nopPublisherService{}
}
