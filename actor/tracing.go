package actor

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name this package's spans are recorded
// under. Wiring a concrete exporter/provider is the host application's
// responsibility (via otel.SetTracerProvider); this package only ever asks
// the global provider for a tracer, so in a program that never configures
// one every span is a harmless no-op.
const tracerName = "github.com/roasbeef/actorcore/actor"

// startDispatchSpan opens a span covering one envelope dispatch. The
// returned function must be deferred to end it.
func startDispatchSpan(ctx context.Context, actorID, messageType string) (context.Context, func()) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, "actor.dispatch",
		trace.WithAttributes(
			attribute.String("actor.id", actorID),
			attribute.String("actor.message_type", messageType),
		),
	)

	return spanCtx, func() { span.End() }
}
