package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/server"
)

const defaultTracerName = "github.com/vango-dev/tooltip/server"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is used with the global provider when Tracer is nil.
	TracerName string

	// Tracer overrides the global provider.
	Tracer trace.Tracer

	// Filter reports whether an event is traced. Nil traces everything.
	Filter func(ctx *server.EventContext) bool
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer uses tracer instead of the global provider.
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = tracer
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx *server.EventContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// OpenTelemetry creates middleware that traces every client event. The
// span is stored in ctx.Context for the handlers it wraps.
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}

	return func(next server.EventHandler) server.EventHandler {
		return func(ctx *server.EventContext) error {
			if config.Filter != nil && !config.Filter(ctx) {
				return next(ctx)
			}

			parent := ctx.Context
			if parent == nil {
				parent = context.Background()
			}
			spanCtx, span := tracer.Start(parent, "tooltip."+ctx.Event.Type.String(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("tooltip.session_id", ctx.SessionID),
					attribute.String("tooltip.event_target", ctx.Event.HID),
				),
			)
			defer span.End()

			ctx.Context = spanCtx
			err := next(ctx)
			ctx.Context = parent

			switch {
			case err == nil:
				span.SetStatus(codes.Ok, "")
			case errors.Is(err, server.ErrUnknownTarget):
				// The client raced a document update; not a server fault.
				span.SetAttributes(attribute.Bool("tooltip.unknown_target", true))
			default:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}

// SpanFromEvent returns the span OpenTelemetry started for ctx, or a
// no-op span when the event is not traced.
func SpanFromEvent(ctx *server.EventContext) trace.Span {
	if ctx.Context == nil {
		return trace.SpanFromContext(context.Background())
	}
	return trace.SpanFromContext(ctx.Context)
}
