// Copyright (c) 2026 Dugout. All rights reserved.

// Package telemetry installs the OpenTelemetry tracer provider.
//
// With OTEL_ENABLED unset nothing is installed and the global provider stays
// a no-op. With an OTLP endpoint spans are shipped over HTTP; without one
// they are pretty-printed to stdout, which is handy during local work.
package telemetry

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/dugoutlab/dugout/internal/platform/constants"
)

// Config selects exporter and sampling.
type Config struct {
	Enabled     bool
	ServiceName string
	Version     string
	Environment string
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// ShutdownFunc flushes and stops the provider.
type ShutdownFunc func(context.Context) error

// Init installs the global tracer provider and propagator.
// The returned shutdown is always safe to call.
func Init(ctx context.Context, cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	cfg.ServiceName = serviceName(cfg.ServiceName)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.Version),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		logger.Warn("otel_resource_init_failed", slog.Any("error", err))
	}

	exporter, err := buildExporter(ctx, cfg, logger)
	if err != nil {
		return noop, fmt.Errorf("telemetry: exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("otel_tracing_initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("endpoint", cfg.Endpoint),
	)
	return provider.Shutdown, nil
}

func buildExporter(ctx context.Context, cfg Config, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}

	logger.Warn("otel_using_stdout_exporter")
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func clampRatio(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	}
	return ratio
}

// serviceName falls back to the binary's own name when OTEL_SERVICE_NAME is blank.
func serviceName(name string) string {
	return cmp.Or(name, constants.AppName)
}
