package service

import (
	"context"

	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/pkg/events"
)

// DomainEventCounter is implemented by pkg/metrics.Metrics.
type DomainEventCounter interface {
	DomainEvent(eventType string)
}

// IEventStatsService consumes domain events from the broker and counts them.
type IEventStatsService interface {
	Handle(ctx context.Context, event events.Event) error
}

type eventStatsService struct {
	counter DomainEventCounter
	logger  logger.ILogger
}

func NewEventStatsService(counter DomainEventCounter, log logger.ILogger) IEventStatsService {
	return &eventStatsService{counter: counter, logger: log}
}

func (s *eventStatsService) Handle(ctx context.Context, event events.Event) error {
	s.counter.DomainEvent(event.EventType())

	switch event.EventType() {
	case events.TypeTierDowngraded, events.TypeProviderQuotaExceed:
		s.logger.Info("EVENTS", "Received "+event.EventType(), event.Payload())
	default:
		s.logger.Debug("EVENTS", "Received "+event.EventType(), event.Payload())
	}
	return nil
}
