package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	cqrs "github.com/paulvitic/cqrs-go"
)

const (
	MetricDispatchCount    = "cqrs.dispatch.count"
	MetricDispatchDuration = "cqrs.dispatch.duration"

	AttrOutcome = attribute.Key("cqrs.outcome")

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics counts dispatches and records their duration in seconds, labelled
// by kind, message type and outcome.
func Metrics(meter metric.Meter) (cqrs.MiddlewareFunc, error) {
	counter, err := meter.Int64Counter(MetricDispatchCount,
		metric.WithDescription("Number of dispatched commands and queries"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricDispatchCount, err)
	}

	histogram, err := meter.Float64Histogram(MetricDispatchDuration,
		metric.WithDescription("Duration of handler execution"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricDispatchDuration, err)
	}

	return func(next cqrs.HandlerFunc) cqrs.HandlerFunc {
		return func(ctx context.Context, msg cqrs.Message) (any, error) {
			start := time.Now()
			res, err := next(ctx, msg)

			outcome := OutcomeSuccess
			if err != nil {
				outcome = OutcomeError
			}
			attrs := metric.WithAttributes(
				AttrKind.String(msg.Kind().String()),
				AttrMessageType.String(cqrs.MessageType(msg)),
				AttrOutcome.String(outcome),
			)
			counter.Add(ctx, 1, attrs)
			histogram.Record(ctx, time.Since(start).Seconds(), attrs)

			return res, err
		}
	}, nil
}
