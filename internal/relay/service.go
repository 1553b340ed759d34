package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/mq"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

// Service publishes pending outbox messages to Kafka on a fixed interval.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(s.cfg.ShutdownTimeout):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-time.After(s.cfg.Interval):
			if _, err := s.RelayBatch(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// RelayBatch publishes one batch inside a transaction and records the outcome
// of every message. It returns how many messages were picked up.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var count int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.outboxMsgRepo.WithDB(db)

		//nolint:gosec
		outboxMsgs, err := repo.ListUnprocessedOutboxMsgs(ctx, int32(s.cfg.BatchSize))
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		count = len(outboxMsgs)
		if count == 0 {
			return nil
		}

		s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", count))

		if err := repo.MarkOutboxMsgsProcessed(ctx, s.publish(ctx, outboxMsgs)); err != nil {
			return fmt.Errorf("mark outbox msgs processed: %w", err)
		}

		return nil
	})

	return count, err
}

func (s *Service) publish(ctx context.Context, outboxMsgs []repository.OutboxMsg) []repository.ProcessedOutboxMsg {
	processed := make([]repository.ProcessedOutboxMsg, len(outboxMsgs))

	var wg sync.WaitGroup
	for i, msg := range outboxMsgs {
		wg.Go(func() {
			processed[i] = repository.ProcessedOutboxMsg{ID: msg.ID}

			err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
				Topic:        msg.Topic,
				Headers:      msg.Headers,
				Payload:      msg.Payload,
				PartitionKey: msg.PartitionKey,
			})
			if err != nil {
				s.logger.ErrorContext(ctx, "error producing message",
					slog.String("outbox_msg_id", msg.ID.String()),
					slog.String("topic", msg.Topic),
					slog.Any("error", err),
				)
				processed[i].Error = ptr.New(err.Error())
			}
		})
	}
	wg.Wait()

	return processed
}
