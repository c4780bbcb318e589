package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	LogsPath      = "/v1/logs"
	TracesPath    = "/v1/traces"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	AuthHeader     string
}

func newResource(cfg *Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
}

func headers(cfg *Config) map[string]string {
	if cfg.AuthHeader == "" {
		return nil
	}
	return map[string]string{"Authorization": cfg.AuthHeader}
}

// Setup installs global tracer and logger providers exporting over OTLP/HTTP.
// The returned shutdown flushes and stops both.
func Setup(ctx context.Context, cfg *Config) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	res, err := newResource(cfg)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create resource: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	traceExporter, traceErr := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithURLPath(TracesPath),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithHeaders(headers(cfg)),
	)
	if traceErr != nil {
		err = errors.Join(err, fmt.Errorf("OTLP trace exporter: %w", traceErr))
	} else {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(traceExporter,
				sdktrace.WithExportTimeout(ExportTimeout),
				sdktrace.WithMaxQueueSize(MaxQueueSize),
			),
		)
		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	}

	logExporter, logErr := otlploghttp.New(ctx,
		otlploghttp.WithEndpoint(cfg.Endpoint),
		otlploghttp.WithURLPath(LogsPath),
		otlploghttp.WithInsecure(),
		otlploghttp.WithHeaders(headers(cfg)),
	)
	if logErr != nil {
		err = errors.Join(err, fmt.Errorf("OTLP log exporter: %w", logErr))
	} else {
		lp := sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter,
				sdklog.WithExportTimeout(ExportTimeout),
				sdklog.WithMaxQueueSize(MaxQueueSize),
			)),
		)
		global.SetLoggerProvider(lp)
		shutdownFuncs = append(shutdownFuncs, lp.Shutdown)
	}

	return shutdown, err
}
