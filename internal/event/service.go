package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/mq"
)

// Service consumes CRM domain events relayed from the outbox.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

func New(logger *slog.Logger, mqConsumer mq.Consumer) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

// handle decodes a JSON payload into T before calling fn.
func handle[T any](fn func(context.Context, T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}
		return fn(ctx, ev)
	}
}

// Register subscribes every CRM event handler on the consumer.
func (s *Service) Register() error {
	handlers := map[string]mq.HandlerFunc{
		TopicCustomerCreated:   handle(s.handleCustomerCreatedEvent),
		TopicProductCreated:    handle(s.handleProductCreatedEvent),
		TopicOrderCreated:      handle(s.handleOrderCreatedEvent),
		TopicProductsRestocked: handle(s.handleProductsRestockedEvent),
	}

	for topic, h := range handlers {
		if err := s.mqConsumer.RegisterHandler(topic, h); err != nil {
			return fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	return nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.Register(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}
