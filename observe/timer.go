package observe

import (
	"context"
	"io"
	"time"

	"github.com/jonwraymond/decorate/wrap"
)

// Timer holds the sinks used by timed functions.
//
// Contract:
//   - Concurrency: a Timer may be shared by any number of timed functions.
//   - Errors: errors from the wrapped function are recorded and propagated
//     unchanged; the elapsed-time report is skipped for them.
//   - Ownership: arguments and results pass through without modification.
type Timer struct {
	tracer   Tracer
	metrics  Metrics
	logger   Logger
	reporter Reporter
}

// NewTimer creates a Timer. Nil components are replaced with no-ops.
func NewTimer(tracer Tracer, metrics Metrics, logger Logger, reporter Reporter) *Timer {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	if reporter == nil {
		reporter = noopReporter{}
	}
	return &Timer{
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
		reporter: reporter,
	}
}

// NewConsoleTimer creates a Timer that only reports "time used" lines to w.
func NewConsoleTimer(w io.Writer) *Timer {
	return NewTimer(nil, nil, nil, NewWriterReporter(w))
}

// TimerFromObserver creates a Timer backed by an Observer's tracer, meter
// and logger.
func TimerFromObserver(obs Observer, reporter Reporter) (*Timer, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewTimer(newTracer(obs.Tracer()), metrics, obs.Logger(), reporter), nil
}

// Timed wraps fn so that each call is measured. After a successful call the
// elapsed wall-clock time goes to the Timer's Reporter and the result is
// returned unchanged.
func Timed[A, R any](t *Timer, meta FuncMeta, fn wrap.Func[A, R]) wrap.Func[A, R] {
	return func(ctx context.Context, arg A) (R, error) {
		ctx, span := t.tracer.StartSpan(ctx, meta)
		if span.IsRecording() {
			span.SetAttributes(AttrArgType.String(argType(arg)))
		}

		start := time.Now()
		result, err := fn(ctx, arg)
		elapsed := time.Since(start)

		t.tracer.EndSpan(span, err)
		t.metrics.RecordCall(ctx, meta, elapsed, err)

		logger := t.logger.WithFunc(meta)
		if err != nil {
			logger.Error(ctx, "call failed", Field{Key: "error", Value: err.Error()})
			return result, err
		}

		logger.Debug(ctx, "call completed", Field{Key: "duration_ms", Value: milliseconds(elapsed)})
		t.reporter.Report(ctx, meta, elapsed)
		return result, nil
	}
}

// Timing returns Timed as a decorator, for use with wrap.Chain.
func Timing[A, R any](t *Timer, meta FuncMeta) wrap.Decorator[A, R] {
	return func(fn wrap.Func[A, R]) wrap.Func[A, R] {
		return Timed(t, meta, fn)
	}
}
