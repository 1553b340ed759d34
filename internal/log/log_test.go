package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/log"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

func TestNew_JSONAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})

	ctx := correlationid.NewContext(context.Background(), "abc-123")
	logger.With(slog.String("service", "graphql")).InfoContext(ctx, "customer created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "customer created", line["msg"])
	assert.Equal(t, "abc-123", line["correlation_id"])
	assert.Equal(t, "graphql", line["service"])
	assert.NotContains(t, line, "trace_id")
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
