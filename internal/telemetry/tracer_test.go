package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/telemetry"
)

func TestInitTracer_Disabled(t *testing.T) {
	cleanup, err := telemetry.InitTracer(context.Background(), config.Otel{ServiceName: "crm-test"})
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	assert.NoError(t, cleanup(context.Background()))
}
