package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")

	// kTracer adds client-level produce and fetch spans on top of ours.
	kTracer = kotel.NewTracer(kotel.TracerPropagator(otel.GetTextMapPropagator()))
)
