package observe

import (
	"context"
	"io"
	"testing"

	"github.com/jonwraymond/decorate/wrap"
)

// BenchmarkTimed_Noop measures wrapper overhead with no-op telemetry.
func BenchmarkTimed_Noop(b *testing.B) {
	timer := NewTimer(nil, nil, nil, nil)
	fn := Timed(timer, FuncMeta{Name: "inc"}, wrap.Lift(func(x int) int { return x + 1 }))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fn(ctx, i)
	}
}

// BenchmarkTimed_Console measures wrapper overhead with a writer reporter.
func BenchmarkTimed_Console(b *testing.B) {
	timer := NewConsoleTimer(io.Discard)
	fn := Timed(timer, FuncMeta{Name: "inc"}, wrap.Lift(func(x int) int { return x + 1 }))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fn(ctx, i)
	}
}

// BenchmarkLogger_JSON measures JSON logger throughput.
func BenchmarkLogger_JSON(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard).WithFunc(FuncMeta{Name: "bench"})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "call completed", Field{Key: "duration_ms", Value: 1.0})
	}
}
