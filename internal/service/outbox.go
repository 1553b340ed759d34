package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/outbox"
)

// newOutboxMsg serializes ev for topic and carries the request trace context.
func newOutboxMsg(ctx context.Context, topic, partitionKey string, ev any) (repository.CreateOutboxMsgParams, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return repository.CreateOutboxMsgParams{}, fmt.Errorf("marshal %s event: %w", topic, err)
	}

	return repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx, topic),
		Payload:      payload,
		PartitionKey: &partitionKey,
	}, nil
}
