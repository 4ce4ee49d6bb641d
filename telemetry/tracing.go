package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	cqrs "github.com/paulvitic/cqrs-go"
)

const (
	AttrKind        = attribute.Key("cqrs.kind")
	AttrMessageType = attribute.Key("cqrs.message_type")
)

// Tracing starts one span per dispatch, named "cqrs.<kind> <message>". A
// failed handler marks the span as errored; the error itself is returned
// exactly as the handler produced it.
func Tracing(tracer trace.Tracer) cqrs.MiddlewareFunc {
	return func(next cqrs.HandlerFunc) cqrs.HandlerFunc {
		return func(ctx context.Context, msg cqrs.Message) (any, error) {
			ctx, span := tracer.Start(ctx, SpanName(msg),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					AttrKind.String(msg.Kind().String()),
					AttrMessageType.String(cqrs.MessageType(msg)),
				),
			)
			defer span.End()

			res, err := next(ctx, msg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return res, err
			}

			span.SetStatus(codes.Ok, "")
			return res, nil
		}
	}
}

// SpanName is the name Tracing gives the span of msg.
func SpanName(msg cqrs.Message) string {
	return "cqrs." + msg.Kind().String() + " " + cqrs.MessageName(msg)
}
