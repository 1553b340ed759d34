package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

// EventTypeHeader names the domain event carried by a message.
const EventTypeHeader = "X-Event-Type"

// BuildHeaders captures the trace context, correlation ID and event type of the
// current request so the relay can publish them alongside the payload.
func BuildHeaders(ctx context.Context, eventType string) map[string]string {
	headers := map[string]string{
		EventTypeHeader: eventType,
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// ExtractContextFromHeaders restores trace context and correlation ID into ctx.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}

// RecordHeaders flattens Kafka record headers into a map. Later duplicates win.
func RecordHeaders(rec *kgo.Record) map[string]string {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}
