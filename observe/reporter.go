package observe

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter receives the elapsed time of each successful timed call.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: reporting is best-effort and must not panic.
type Reporter interface {
	Report(ctx context.Context, meta FuncMeta, elapsed time.Duration)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, meta FuncMeta, elapsed time.Duration)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, meta FuncMeta, elapsed time.Duration) {
	f(ctx, meta, elapsed)
}

// writerReporter writes one human-readable line per call.
type writerReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter returns a Reporter that writes "time used: <elapsed>"
// lines to w. A nil w means os.Stdout.
func NewWriterReporter(w io.Writer) Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &writerReporter{w: w}
}

func (r *writerReporter) Report(_ context.Context, _ FuncMeta, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "time used: %s\n", elapsed)
}

type noopReporter struct{}

func (noopReporter) Report(context.Context, FuncMeta, time.Duration) {}
