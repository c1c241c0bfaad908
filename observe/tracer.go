package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys for a timed function call. Wrappers running inside the
// call (such as the memoizing wrapper) may add their own func.* attributes
// to the span found in the call's context.
const (
	AttrFuncID        = attribute.Key("func.id")
	AttrFuncName      = attribute.Key("func.name")
	AttrFuncNamespace = attribute.Key("func.namespace")
	AttrFuncVersion   = attribute.Key("func.version")
	AttrFuncTags      = attribute.Key("func.tags")
	AttrFuncError     = attribute.Key("func.error")
	AttrArgType       = attribute.Key("func.arg.type")
)

// Tracer opens one span per function call.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic. The span is
//   marked failed only by an error returned from the wrapped function.
type Tracer interface {
	// StartSpan starts the span for one call of the function named by meta.
	// The returned context carries the span into the function body.
	StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts an internal span named func.call.<ns>.<name>.
func (t *tracerImpl) StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrFuncID.String(meta.FuncID()),
		AttrFuncName.String(meta.Name),
		AttrFuncError.Bool(false), // updated in EndSpan
	}
	if meta.Namespace != "" {
		attrs = append(attrs, AttrFuncNamespace.String(meta.Namespace))
	}
	if meta.Version != "" {
		attrs = append(attrs, AttrFuncVersion.String(meta.Version))
	}
	if len(meta.Tags) > 0 {
		attrs = append(attrs, AttrFuncTags.StringSlice(meta.Tags))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(AttrFuncError.Bool(true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// argType names the dynamic type of a call argument, "<nil>" for nil.
func argType(arg any) string {
	return fmt.Sprintf("%T", arg)
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
