package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

type CreateOutboxMsgParams struct {
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type OutboxMsg struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

// ProcessedOutboxMsg marks a relayed message; a nil Error means it was published.
type ProcessedOutboxMsg struct {
	ID    uuid.UUID
	Error *string
}

type OutboxMsgRepository interface {
	WithDB(db db.DB) OutboxMsgRepository
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	// ListUnprocessedOutboxMsgs locks up to limit pending messages, oldest first,
	// skipping rows another relay already holds.
	ListUnprocessedOutboxMsgs(ctx context.Context, limit int32) ([]OutboxMsg, error)
	MarkOutboxMsgsProcessed(ctx context.Context, msgs []ProcessedOutboxMsg) error
}

type outboxMsgRepository struct {
	db db.DB
}

func NewOutboxMsgRepository(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{db: db}
}

func (r outboxMsgRepository) WithDB(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{db: db}
}

func (r outboxMsgRepository) CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error {
	headers, err := json.Marshal(params.Headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO outbox_messages (topic, headers, payload, partition_key, created_at)
		VALUES (@topic, @headers, @payload, @partition_key, @created_at)
	`, pgx.NamedArgs{
		"topic":         params.Topic,
		"headers":       headers,
		"payload":       []byte(params.Payload),
		"partition_key": params.PartitionKey,
		"created_at":    time.Now(),
	}); err != nil {
		return fmt.Errorf("insert outbox msg: %w", err)
	}

	return nil
}

func (r outboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, limit int32) ([]OutboxMsg, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, topic, headers, payload, partition_key
		FROM outbox_messages
		WHERE processed_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed outbox msgs: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (OutboxMsg, error) {
		var (
			msg     OutboxMsg
			headers []byte
			payload []byte
		)
		if err := row.Scan(&msg.ID, &msg.Topic, &headers, &payload, &msg.PartitionKey); err != nil {
			return OutboxMsg{}, err
		}

		msg.Headers = map[string]string{}
		if len(headers) > 0 {
			if err := json.Unmarshal(headers, &msg.Headers); err != nil {
				return OutboxMsg{}, fmt.Errorf("unmarshal headers: %w", err)
			}
		}
		msg.Payload = payload

		return msg, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect outbox msgs: %w", err)
	}

	return msgs, nil
}

func (r outboxMsgRepository) MarkOutboxMsgsProcessed(ctx context.Context, msgs []ProcessedOutboxMsg) error {
	if len(msgs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(msgs))
	errs := make([]*string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
		errs = append(errs, m.Error)
	}

	if _, err := r.db.Exec(ctx, `
		UPDATE outbox_messages AS o
		SET processed_at = NOW(),
			error        = e.error
		FROM (
			SELECT UNNEST(@ids::uuid[])    AS id,
				   UNNEST(@errors::text[]) AS error
		) AS e
		WHERE o.id = e.id
	`, pgx.NamedArgs{
		"ids":    ids,
		"errors": errs,
	}); err != nil {
		return fmt.Errorf("mark outbox msgs processed: %w", err)
	}

	return nil
}
