package telemetry_test

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

func spanFromContext(ctx context.Context) bool {
	return trace.SpanFromContext(ctx).SpanContext().IsValid()
}
