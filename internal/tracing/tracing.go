// Package tracing configures the OpenTelemetry pipeline. Traces are exported
// over OTLP/HTTP; with no endpoint configured the provider stays a no-op.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qikpos/pos-platform/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
)

// Setup installs the global tracer provider and returns its shutdown hook.
func Setup(ctx context.Context, cfg *config.Tracing) (func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		slog.Info("Tracing disabled, no OTLP endpoint configured")

		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("pos-platform"),
		semconv.ServiceVersion("1.0.0"),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)

	slog.Info("Tracing enabled", slog.String("endpoint", cfg.OTLPEndpoint))

	return provider.Shutdown, nil
}
