package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/decorate/cache"
	"github.com/jonwraymond/decorate/internal/config"
	"github.com/jonwraymond/decorate/internal/demo"
	"github.com/jonwraymond/decorate/observe"
	"github.com/jonwraymond/decorate/primes"
)

const (
	serviceName = "decorate"
	version     = "0.1.0"
)

// sources resolves a flag from the environment first, then the config file.
func sources(env, key, path string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		yaml.YAML(key, altsrc.StringSourcer(path)),
	)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	path := config.Path()

	return &cli.Command{
		Name:      serviceName,
		Usage:     "function wrapper demonstrations",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug|info|warn|error",
				Sources: sources("DECORATE_LOG_LEVEL", "log.level", path),
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "json|console",
				Sources: sources("DECORATE_LOG_FORMAT", "log.format", path),
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "trace-exporter",
				Usage:   "otlp|jaeger|stdout|none",
				Sources: sources("DECORATE_TRACE_EXPORTER", "trace.exporter", path),
				Value:   "none",
			},
			&cli.FloatFlag{
				Name:    "trace-sample",
				Usage:   "fraction of calls to trace, 0.0-1.0",
				Sources: sources("DECORATE_TRACE_SAMPLE", "trace.sample", path),
				Value:   1.0,
			},
			&cli.StringFlag{
				Name:    "metrics-exporter",
				Usage:   "otlp|prometheus|stdout|none",
				Sources: sources("DECORATE_METRICS_EXPORTER", "metrics.exporter", path),
				Value:   "none",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withObserver(ctx, cmd, stderr, func(obs observe.Observer) error {
				logger := obs.Logger().WithFunc(observe.FuncMeta{Namespace: "demo", Name: "square"})
				hooks := cache.Hooks{
					OnHit:  func(key any) { logger.Debug(ctx, "cache hit", observe.Field{Key: "key", Value: key}) },
					OnMiss: func(key any) { logger.Debug(ctx, "cache miss", observe.Field{Key: "key", Value: key}) },
					LogError: func(err error) {
						logger.Warn(ctx, "cache error", observe.Field{Key: "error", Value: err.Error()})
					},
				}
				return demo.Run(ctx, stdout, cache.WithHooks(hooks))
			})
		},
		Commands: []*cli.Command{
			primesCommand(stdout, stderr, path),
		},
	}
}

func primesCommand(stdout, stderr io.Writer, path string) *cli.Command {
	return &cli.Command{
		Name:      "primes",
		Usage:     "count primes up to a limit, reporting the time used",
		UsageText: "decorate primes [--limit N]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "inclusive upper bound",
				Sources: sources("DECORATE_PRIMES_LIMIT", "primes.limit", path),
				Value:   100000,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withObserver(ctx, cmd, stderr, func(obs observe.Observer) error {
				timer, err := observe.TimerFromObserver(obs, observe.NewWriterReporter(stdout))
				if err != nil {
					return err
				}

				total, err := primes.NewCounter(timer)(ctx, cmd.Int("limit"))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(stdout, "total is %s\n", humanize.Comma(int64(total)))
				return err
			})
		},
	}
}

// withObserver builds the Observer from the global flags, runs fn and shuts
// the Observer down, flushing any exporters.
func withObserver(ctx context.Context, cmd *cli.Command, stderr io.Writer, fn func(observe.Observer) error) (err error) {
	cfg := observeConfig(cmd, stderr)
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure telemetry: %w", err)
	}
	defer func() {
		if shutdownErr := obs.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = fmt.Errorf("shutdown telemetry: %w", shutdownErr)
		}
	}()

	return fn(obs)
}

func observeConfig(cmd *cli.Command, stderr io.Writer) observe.Config {
	traceExporter := cmd.String("trace-exporter")
	metricsExporter := cmd.String("metrics-exporter")

	return observe.Config{
		ServiceName: serviceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   traceExporter != "none" && traceExporter != "",
			Exporter:  traceExporter,
			SamplePct: cmd.Float("trace-sample"),
		},
		Metrics: observe.MetricsConfig{
			Enabled:  metricsExporter != "none" && metricsExporter != "",
			Exporter: metricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cmd.String("log-level"),
			Format:  cmd.String("log-format"),
		},
		Output: stderr,
	}
}
