package correlationid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP and message header carrying the correlation ID.
const Header = "X-Correlation-ID"

type ctxKey struct{}

// New generates a fresh correlation ID.
func New() string {
	return uuid.NewString()
}

// NewContext returns a copy of ctx carrying the correlation ID.
func NewContext(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, correlationID)
}

// FromContext returns the correlation ID stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
