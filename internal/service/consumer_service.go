package service

import (
	"context"
	"encoding/json"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	shoppingList IShoppingListService
	logger       logger.ILogger
}

// NewConsumerService rebuilds shopping lists queued by IPublisherService.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	shoppingList IShoppingListService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		shoppingList: shoppingList,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	var payload dto.ShoppingListRefreshMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Ack so a malformed message is not redelivered forever.
		msg.Ack()
		return
	}

	if err := cs.shoppingList.Refresh(ctx, payload.PlanId); err != nil {
		cs.logger.Error("CONSUMER", "Shopping list refresh failed", map[string]interface{}{
			"plan_id": payload.PlanId.String(),
			"error":   err.Error(),
		})
	}
	// The list is rebuilt on every read as well, so a failed refresh is not retried.
	msg.Ack()
}
