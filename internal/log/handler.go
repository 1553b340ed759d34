package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

var _ slog.Handler = enrichedHandler{}

// enrichedHandler adds the request correlation ID and the active span to every record.
type enrichedHandler struct {
	next slog.Handler
}

func newEnrichedHandler(next slog.Handler) enrichedHandler {
	return enrichedHandler{next: next}
}

func (h enrichedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h enrichedHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := correlationid.FromContext(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", id))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, r)
}

func (h enrichedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newEnrichedHandler(h.next.WithAttrs(attrs))
}

func (h enrichedHandler) WithGroup(name string) slog.Handler {
	return newEnrichedHandler(h.next.WithGroup(name))
}
