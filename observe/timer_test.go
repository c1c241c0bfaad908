package observe

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/decorate/wrap"
)

// recordingReporter captures reports for assertions.
type recordingReporter struct {
	mu      sync.Mutex
	elapsed []time.Duration
	metas   []FuncMeta
}

func (r *recordingReporter) Report(_ context.Context, meta FuncMeta, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = append(r.elapsed, elapsed)
	r.metas = append(r.metas, meta)
}

func TestTimed_ReturnsResultUnchanged(t *testing.T) {
	reporter := &recordingReporter{}
	timer := NewTimer(nil, nil, nil, reporter)

	square := wrap.Lift(func(x int) int { return x * x })
	timed := Timed(timer, FuncMeta{Name: "square"}, square)

	for _, x := range []int{-3, 0, 4, 12} {
		want, _ := square.Call(x)
		got, err := timed.Call(x)
		if err != nil {
			t.Fatalf("Call(%d) error: %v", x, err)
		}
		if got != want {
			t.Errorf("Call(%d) = %d, want %d", x, got, want)
		}
	}

	if len(reporter.elapsed) != 4 {
		t.Errorf("expected one report per call, got %d", len(reporter.elapsed))
	}
	if reporter.metas[0].Name != "square" {
		t.Errorf("expected meta passed to reporter, got %+v", reporter.metas[0])
	}
}

func TestTimed_MeasuresElapsed(t *testing.T) {
	reporter := &recordingReporter{}
	timer := NewTimer(nil, nil, nil, reporter)

	sleepy := wrap.Lift(func(d time.Duration) struct{} {
		time.Sleep(d)
		return struct{}{}
	})
	timed := Timed(timer, FuncMeta{Name: "sleep"}, sleepy)

	if _, err := timed.Call(5 * time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reporter.elapsed) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reporter.elapsed))
	}
	if reporter.elapsed[0] < 5*time.Millisecond {
		t.Errorf("elapsed %v shorter than the call", reporter.elapsed[0])
	}
}

func TestTimed_ErrorSkipsReport(t *testing.T) {
	reporter := &recordingReporter{}
	timer := NewTimer(nil, nil, nil, reporter)
	testErr := errors.New("execution failed")

	failing := wrap.LiftErr(func(int) (int, error) { return 0, testErr })
	timed := Timed(timer, FuncMeta{Name: "failing"}, failing)

	_, err := timed.Call(1)
	if err != testErr {
		t.Errorf("expected error %v unchanged, got %v", testErr, err)
	}
	if len(reporter.elapsed) != 0 {
		t.Errorf("expected no report on error, got %d", len(reporter.elapsed))
	}
}

func TestTimed_ConsoleLine(t *testing.T) {
	var out bytes.Buffer
	timer := NewConsoleTimer(&out)

	timed := Timed(timer, FuncMeta{Name: "square"}, wrap.Lift(func(x int) int { return x * x }))
	_, _ = timed.Call(3)
	_, _ = timed.Call(4)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	pattern := regexp.MustCompile(`^time used: [0-9.]+(ns|µs|ms|s)$`)
	for _, line := range lines {
		if !pattern.MatchString(line) {
			t.Errorf("unexpected report line %q", line)
		}
	}
}

func TestTimed_Telemetry(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	var logs bytes.Buffer
	timer := NewTimer(&tracerImpl{tracer: tp.Tracer("test")}, metrics, NewLoggerWithWriter("debug", &logs), nil)

	testErr := errors.New("negative")
	fn := wrap.LiftErr(func(x int) (int, error) {
		if x < 0 {
			return 0, testErr
		}
		return x, nil
	})
	timed := Timed(timer, FuncMeta{Namespace: "demo", Name: "identity"}, fn)

	_, _ = timed.Call(1)
	_, _ = timed.Call(-1)

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "func.call.demo.identity" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}

	rm := collect(t, reader)
	if got := sumValue(t, rm, "func.call.total"); got != 2 {
		t.Errorf("func.call.total = %d, want 2", got)
	}
	if got := sumValue(t, rm, "func.call.errors"); got != 1 {
		t.Errorf("func.call.errors = %d, want 1", got)
	}
	if got := histogramCount(t, rm, "func.call.duration_ms"); got != 1 {
		t.Errorf("duration count = %d, want 1", got)
	}

	out := logs.String()
	if !strings.Contains(out, `"msg":"call completed"`) || !strings.Contains(out, `"msg":"call failed"`) {
		t.Errorf("expected completed and failed log lines, got %s", out)
	}
}

func TestTimed_ContextCarriesSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	timer := NewTimer(&tracerImpl{tracer: tp.Tracer("test")}, nil, nil, nil)

	var inner sdktrace.ReadOnlySpan
	fn := func(ctx context.Context, _ int) (int, error) {
		_, span := tp.Tracer("test").Start(ctx, "inner")
		span.End()
		inner = recorder.Ended()[0]
		return 0, nil
	}
	_, _ = Timed(timer, FuncMeta{Name: "outer"}, fn).Call(0)

	outer := recorder.Ended()[1]
	if inner.Parent().SpanID() != outer.SpanContext().SpanID() {
		t.Error("expected the wrapped function to run inside the call span")
	}
}

func TestTiming_Decorator(t *testing.T) {
	reporter := &recordingReporter{}
	timer := NewTimer(nil, nil, nil, reporter)

	fn := wrap.Chain(Timing[int, int](timer, FuncMeta{Name: "inc"}))(wrap.Lift(func(x int) int { return x + 1 }))
	if got, _ := fn.Call(1); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if len(reporter.elapsed) != 1 {
		t.Errorf("expected 1 report, got %d", len(reporter.elapsed))
	}
}

func TestTimerFromObserver(t *testing.T) {
	if _, err := TimerFromObserver(nil, nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("expected ErrNilObserver, got %v", err)
	}

	obs, err := NewObserver(context.Background(), Config{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	reporter := &recordingReporter{}
	timer, err := TimerFromObserver(obs, reporter)
	if err != nil {
		t.Fatalf("TimerFromObserver failed: %v", err)
	}

	_, _ = Timed(timer, FuncMeta{Name: "id"}, wrap.Lift(func(s string) string { return s })).Call("x")
	if len(reporter.elapsed) != 1 {
		t.Errorf("expected 1 report, got %d", len(reporter.elapsed))
	}
}

func TestWriterReporter_NilDefaultsToStdout(t *testing.T) {
	r := NewWriterReporter(nil).(*writerReporter)
	if r.w == nil {
		t.Fatal("expected a default writer")
	}
}

func TestReporterFunc(t *testing.T) {
	var got time.Duration
	r := ReporterFunc(func(_ context.Context, _ FuncMeta, d time.Duration) { got = d })
	r.Report(context.Background(), FuncMeta{}, time.Second)
	if got != time.Second {
		t.Errorf("got %v, want 1s", got)
	}
}
