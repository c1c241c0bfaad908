// Package observe provides the timing wrapper and the telemetry behind it.
//
// Timed wraps a function so that every successful call reports its elapsed
// wall-clock time to a Reporter (by default a "time used: <duration>" line
// on stdout). The same Timer also opens a span, records call metrics and logs
// the call through the configured Observer. Errors from the wrapped function
// propagate unchanged and skip the report.
//
// It is a pure instrumentation library: no execution policy, no retries and
// no I/O beyond the reporter, the logger and exporter setup.
package observe
