package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/mq"
)

type fakeDB struct {
	db.DB
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeOutboxRepo struct {
	pending   []repository.OutboxMsg
	limit     int32
	processed []repository.ProcessedOutboxMsg
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(context.Context, repository.CreateOutboxMsgParams) error {
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(_ context.Context, limit int32) ([]repository.OutboxMsg, error) {
	r.limit = limit
	return r.pending, nil
}

func (r *fakeOutboxRepo) MarkOutboxMsgsProcessed(_ context.Context, msgs []repository.ProcessedOutboxMsg) error {
	r.processed = append(r.processed, msgs...)
	return nil
}

type fakeProducer struct {
	mu       sync.Mutex
	failures map[string]error
	produced []mq.ProduceMsg
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failures[msg.Topic]; err != nil {
		return err
	}
	p.produced = append(p.produced, msg)
	return nil
}

func TestRelayBatch(t *testing.T) {
	okMsg := repository.OutboxMsg{ID: uuid.New(), Topic: "crm.order.created", Payload: []byte(`{}`)}
	badMsg := repository.OutboxMsg{ID: uuid.New(), Topic: "crm.customer.created", Payload: []byte(`{}`)}

	repo := &fakeOutboxRepo{pending: []repository.OutboxMsg{okMsg, badMsg}}
	producer := &fakeProducer{failures: map[string]error{"crm.customer.created": errors.New("broker down")}}

	svc := NewService(config.Relay{BatchSize: 50}, slog.New(slog.DiscardHandler), fakeDB{}, repo, producer)

	count, err := svc.RelayBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, int32(50), repo.limit)
	require.Len(t, producer.produced, 1)
	assert.Equal(t, "crm.order.created", producer.produced[0].Topic)

	require.Len(t, repo.processed, 2)
	assert.Equal(t, okMsg.ID, repo.processed[0].ID)
	assert.Nil(t, repo.processed[0].Error)
	assert.Equal(t, badMsg.ID, repo.processed[1].ID)
	require.NotNil(t, repo.processed[1].Error)
	assert.Equal(t, "broker down", *repo.processed[1].Error)
}

func TestRelayBatch_Empty(t *testing.T) {
	repo := &fakeOutboxRepo{}
	svc := NewService(config.Relay{BatchSize: 10}, slog.New(slog.DiscardHandler), fakeDB{}, repo, &fakeProducer{})

	count, err := svc.RelayBatch(context.Background())
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Empty(t, repo.processed)
}
